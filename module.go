package cfg

import (
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/overlay"
)

// ErrEmptyName is returned when a module is created without a name.
var ErrEmptyName = errors.New("config module name must not be empty")

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates an Fx module that loads configuration with opts.
// The name is used as both the module name and the DI named tag of the provided *overlay.Overlay.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func() (*overlay.Overlay, error) {
					conf, err := Load(opts...)
					if err != nil {
						return nil, err
					}

					slog.Info("config loaded", slog.String("name", name), slog.Any("files", conf.Filenames()))

					return conf, nil
				},
				fx.ResultTags(nameTag(name)),
			),
		),
	)
}

// Section provides the value at path of the configuration named name, decoded into a *T
// with config.Provider. The result carries the same name tag.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Section[T any](name, path string) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Provide(
		fx.Annotate(
			func(conf *overlay.Overlay) (*T, error) {
				return config.Provider(new(T), path)(conf)
			},
			fx.ParamTags(nameTag(name)),
			fx.ResultTags(nameTag(name)),
		),
	)
}
