package manifest

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks a manifest file may contain.
type fileRoot struct {
	Series   []*seriesBlock   `hcl:"series,block"`
	Settings []*settingsBlock `hcl:"settings,block"`
}

type seriesBlock struct {
	Name         string              `hcl:"name,label"`
	Description  string              `hcl:"description,optional"`
	Capabilities *capabilitiesBlock  `hcl:"capabilities,block"`
	Coefficients []*coefficientBlock `hcl:"coefficient,block"`
}

type coefficientBlock struct {
	Type         string             `hcl:"type,label"`
	Capabilities *capabilitiesBlock `hcl:"capabilities,block"`
}

type capabilitiesBlock struct {
	Interop []string `hcl:"interop,optional"`
	Pow     []string `hcl:"pow,optional"`
	Eval    []string `hcl:"eval,optional"`
	Subs    []string `hcl:"subs,optional"`
}

// settingsBlock is decoded attribute by attribute so values can be converted
// through cty with precise error messages.
type settingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
