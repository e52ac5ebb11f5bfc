package nouncaughterrors

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors/config"
)

func init() {
	register.Plugin("nouncaughterrors", newPlugin)
}

// Settings mirrors the configuration file for golangci-lint's custom
// linter settings block. Pointer fields distinguish "unset" from "false".
type Settings struct {
	RequireNever       *bool    `json:"require-never"`
	AllowErrorBubbling *bool    `json:"allow-error-bubbling"`
	UnsafeCalls        string   `json:"unsafe-calls"`
	ErrorHandlers      []string `json:"error-handlers"`
	GenericWrappers    []string `json:"generic-wrappers"`
	StrictMode         *bool    `json:"strict-mode"`
}

func newPlugin(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[Settings](settings)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if s.RequireNever != nil {
		cfg.RequireNever = *s.RequireNever
	}
	if s.AllowErrorBubbling != nil {
		cfg.AllowErrorBubbling = *s.AllowErrorBubbling
	}
	if s.UnsafeCalls != "" {
		if err := cfg.UnsafeCalls.UnmarshalText([]byte(s.UnsafeCalls)); err != nil {
			return nil, err
		}
	}
	cfg.ErrorHandlers = config.NameSet(s.ErrorHandlers)
	cfg.GenericWrappers = config.NameSet(s.GenericWrappers)
	if s.StrictMode != nil {
		cfg.StrictMode = *s.StrictMode
	}
	return &plugin{cfg: cfg}, nil
}

type plugin struct {
	cfg *config.Config
}

func (p *plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{New(p.cfg)}, nil
}

func (p *plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
