package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/lwecrypt/lwecrypt/lwe"
	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

// errMismatch is returned when the decrypted message differs from the original one.
var errMismatch = errors.New("decrypted message does not match the original")

func run(c *cli.Context) error {

	log := newLogger(c.App.ErrWriter, c.String(logLevelFlag))

	message := c.String(messageFlag)
	if c.Args().Present() {
		message = c.Args().First()
	}

	params, err := loadParameters(c)
	if err != nil {
		return err
	}

	opts := []lwe.Option{lwe.WithLogger(log)}
	if seed := c.String(seedFlag); seed != "" {
		prng, err := sampling.NewSeededPRNG(seed)
		if err != nil {
			return errors.Wrap(err, "cannot create seeded PRNG")
		}
		opts = append(opts, lwe.WithPRNG(prng))
	}

	engine := lwe.NewEngine(params, opts...)

	log.Info().
		Int("n", params.N()).
		Int("m", params.M()).
		Uint64("q", params.Q()).
		Float64("sigma", params.Sigma()).
		Str("failureBound", params.FailureBound().Text('g', 4)).
		Msg("LWE parameters")

	start := time.Now()
	pk, sk := engine.GenerateKeys()
	log.Info().Dur("elapsed", time.Since(start)).Msg("Key generation")

	if noise, err := lwe.MeasureNoise(params, pk, sk); err == nil {
		log.Debug().
			Float64("mean", noise.Mean).
			Float64("std", noise.StdDev).
			Float64("max", noise.MaxAbs).
			Msg("Public key noise")
	}

	start = time.Now()
	cts, err := encrypt(c.Context, engine, message, pk, c.Int(workersFlag))
	if err != nil {
		return errors.Wrap(err, "encryption failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("ciphertexts", cts.Len()).Msg("Encryption")

	if path := c.String(outFlag); path != "" {
		if cts, err = roundTripFile(path, cts); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("bytes", cts.BinarySize()).Msg("Ciphertexts written and read back")
	}

	start = time.Now()
	decrypted, err := engine.DecryptMessage(cts, sk)
	if err != nil {
		return errors.Wrap(err, "decryption failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("Decryption")

	return report(log, message, decrypted)
}

func encrypt(ctx context.Context, engine *lwe.Engine, message string, pk *lwe.PublicKey, workers int) (lwe.CiphertextBatch, error) {
	if workers > 1 {
		return engine.EncryptMessageParallel(ctx, message, pk, workers)
	}
	return engine.EncryptMessage(message, pk)
}

// roundTripFile writes cts to path and decodes them back from the file.
func roundTripFile(path string, cts lwe.CiphertextBatch) (lwe.CiphertextBatch, error) {

	data, err := cts.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize ciphertexts")
	}

	if err = os.WriteFile(path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, "cannot write ciphertexts to %s", path)
	}

	if data, err = os.ReadFile(path); err != nil {
		return nil, errors.Wrapf(err, "cannot read ciphertexts from %s", path)
	}

	var read lwe.CiphertextBatch
	if err = read.UnmarshalBinary(data); err != nil {
		return nil, errors.Wrapf(err, "cannot decode ciphertexts from %s", path)
	}

	return read, nil
}

func report(log *zerolog.Logger, original, decrypted string) error {

	match := original == decrypted

	event := log.Info()
	if !match {
		event = log.Error()
	}
	event.Str("original", original).Str("decrypted", decrypted).Bool("match", match).Msg("Round trip")

	if !match {
		return errors.Wrapf(errMismatch, "got %q", decrypted)
	}

	return nil
}
