// Package config holds the dcmtok CLI's global, flag-populated settings.
package config

import "github.com/go-playground/validator/v10"

// GlobalConfig holds flags shared by every dcmtok subcommand. It is embedded
// into the root CLI struct so kong populates it alongside any subcommand's
// own flags.
type GlobalConfig struct {
	LogLevel string `help:"Log level." default:"info" enum:"trace,debug,info,warn,error,fatal" validate:"oneof=trace debug info warn error fatal"`
	Pretty   bool   `help:"Pretty-print logs instead of JSON." default:"true"`
	Debug    bool   `help:"Report the caller on every log line."`
	LogFile  string `name:"log-file" help:"Write logs to this file (rotated) instead of stderr."`

	// TransferSyntax is the alias or UID assumed for every input file, since
	// this CLI does not parse File Meta Information to negotiate one.
	TransferSyntax string `name:"transfer-syntax" help:"Transfer syntax alias or UID to assume (implicit-vr-le, explicit-vr-le, explicit-vr-be, or a UID)." default:"implicit-vr-le" validate:"required"`
}

var validate = validator.New()

// Validate checks GlobalConfig against its struct tags, the way the
// teacher's FHIR validator checks a resource against its own tags.
func (c *GlobalConfig) Validate() error {
	return validate.Struct(c)
}
