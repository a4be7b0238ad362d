// Command lwe runs a key generation, encryption and decryption round trip of
// a text message with the toy LWE scheme and reports the time spent in each phase.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	defaultMessage = "Secret Data"

	messageFlag  = "message"
	configFlag   = "config"
	nFlag        = "n"
	qFlag        = "q"
	sigmaFlag    = "sigma"
	seedFlag     = "seed"
	workersFlag  = "workers"
	outFlag      = "out"
	logLevelFlag = "loglevel"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "lwe",
		Usage:     "Encrypt and decrypt a message bit by bit with a toy LWE public-key scheme",
		UsageText: "lwe [options] [MESSAGE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  messageFlag,
				Usage: "Message to encrypt. Each character must have a code point below 256.",
				Value: defaultMessage,
			},
			&cli.StringFlag{
				Name:    configFlag,
				Usage:   "YAML file with the parameters n, q and sigma",
				EnvVars: []string{"LWE_CONFIG"},
			},
			&cli.IntFlag{
				Name:  nFlag,
				Usage: "Lattice dimension, overrides the configuration file",
			},
			&cli.Uint64Flag{
				Name:  qFlag,
				Usage: "Modulus, overrides the configuration file",
			},
			&cli.Float64Flag{
				Name:  sigmaFlag,
				Usage: "Standard deviation of the error, overrides the configuration file",
			},
			&cli.StringFlag{
				Name:  seedFlag,
				Usage: "Seed of a deterministic PRNG. Without it, randomness is read from crypto/rand.",
			},
			&cli.IntFlag{
				Name:  workersFlag,
				Usage: "Number of goroutines encrypting the message",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  outFlag,
				Usage: "File the ciphertexts are written to. Decryption then reads them back from it.",
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Application logging level {debug, info, warn, error, fatal}",
				Value:   "info",
				EnvVars: []string{"LWE_LOGLEVEL"},
			},
		},
		Action: run,
	}
}
