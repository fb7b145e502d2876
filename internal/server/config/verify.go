package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their configuration key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return logger.ValidLevel(fl.Field().String())
	})
	return v
}

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return translate(err)
	}

	http := cfg.Server.HTTP
	if (http.TLSCertFile == "") != (http.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and server.http.tls_key_file must be set together")
	}
	return nil
}

// translate turns validator errors into one message keyed by config path.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "ServerConfig.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, key+" is required")
		case "file":
			msgs = append(msgs, fmt.Sprintf("%s: file %q does not exist", key, fe.Value()))
		default:
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", key, fe.Tag(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", key, fe.Tag()))
			}
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
