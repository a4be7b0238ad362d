package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/lwecrypt/lwecrypt/lwe"
)

// loadParameters reads the parameters from the configuration file, if any,
// over the default ones, then applies the command line overrides.
func loadParameters(c *cli.Context) (params lwe.Parameters, err error) {

	literal := lwe.DefaultParametersLiteral

	if path := c.String(configFlag); path != "" {
		if literal, err = readConfig(path); err != nil {
			return
		}
	}

	if c.IsSet(nFlag) {
		literal.N = c.Int(nFlag)
	}

	if c.IsSet(qFlag) {
		literal.Q = c.Uint64(qFlag)
	}

	if c.IsSet(sigmaFlag) {
		literal.Sigma = c.Float64(sigmaFlag)
	}

	if params, err = lwe.NewParametersFromLiteral(literal); err != nil {
		return params, errors.Wrap(err, "invalid parameters")
	}

	return
}

// readConfig decodes a YAML parameters file. Missing keys keep their default value.
func readConfig(path string) (literal lwe.ParametersLiteral, err error) {

	literal = lwe.DefaultParametersLiteral

	file, err := os.Open(path)
	if err != nil {
		return literal, errors.Wrapf(err, "cannot open config file %s", path)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)

	if err = dec.Decode(&literal); err != nil && err != io.EOF {
		return literal, errors.Wrapf(err, "cannot parse config file %s", path)
	}

	return literal, nil
}
