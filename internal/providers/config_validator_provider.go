package providers

import (
	"aurora/internal/structures"
	"fmt"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}
	for i, b := range c.conf.Backends {
		if b.Name == "" || b.Url == "" {
			return fmt.Errorf("invalid configuration: backend #%d needs both name and url", i)
		}
		if !validate.IsURL(b.Url) {
			return fmt.Errorf("invalid configuration: backend %q has malformed url %q", b.Name, b.Url)
		}
	}
	return nil
}
