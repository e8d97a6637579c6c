// Package cfg finds, parses and exposes application configuration files.
//
// Load runs the default search policy for a program and returns every
// configuration file it found as one overlay, earlier files shadowing later
// ones key by key:
//
//	conf, err := cfg.Load(cfg.WithBasename("myapp"), cfg.WithDefault(nil))
//	port, err := config.Int(conf, "server.port")
//
// The default policy checks, in order:
//
//  1. the file given with WithConfigFile, which must exist when set;
//  2. the file named by $<BASENAME>_CONFIG_FILENAME, which must exist when set;
//  3. <local path>/.<basename>.rc when WithLocalPath is given;
//  4. ~/.<basename>.rc;
//  5. /etc/<basename>.rc.
//
// The first two stop the search when found; the last three accumulate.
// Each file's dialect is detected independently by trial parse.
//
// NewModule provides the loaded overlay to an Fx application under a name tag.
package cfg
