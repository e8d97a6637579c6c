package cfg_test

import (
	"fmt"
	"os"
	"path/filepath"

	cfg "github.com/0xalexb/hjarta-cfg"
	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/finder"
)

func ExampleLoad() {
	dir, err := os.MkdirTemp("", "cfg-example")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}
	defer os.RemoveAll(dir)

	user := filepath.Join(dir, "user.rc")
	system := filepath.Join(dir, "system.rc")

	_ = os.WriteFile(user, []byte("server:\n  port: 9000\n"), 0o600)
	_ = os.WriteFile(system, []byte("[server]\nport = 80\nhost = \"example.com\"\n"), 0o600)

	conf, err := cfg.Load(cfg.WithRules(
		finder.Rule{Cascade: true, Filename: finder.Path(user)},
		finder.Rule{Cascade: true, Filename: finder.Path(system)},
	))
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	port, _ := config.Int(conf, "server.port")
	host, _ := config.Value[string](conf, "server.host")

	fmt.Printf("%s:%d\n", host, port)
	// Output: example.com:9000
}

func ExampleLoad_default() {
	conf, err := cfg.Load(
		cfg.WithRules(finder.Rule{Filename: finder.Path("/nonexistent/app.rc")}),
		cfg.WithDefault(map[string]any{"retries": 3}),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	retries, _ := config.Int(conf, "retries")

	fmt.Println(conf.Filenames(), retries)
	// Output: [<default>] 3
}
