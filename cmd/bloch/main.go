// Package main provides the Bloch QML Framework CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/circuit"
	"github.com/bloch-ml/bloch/learn"
	"github.com/bloch-ml/bloch/optim"
	"github.com/bloch-ml/bloch/qnn"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Bloch QML Framework %s\n", version)
			return
		case "train":
			if err := runTrain(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "train: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Bloch QML Framework - Quantum Machine Learning for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train a demo parity classifier")
	fmt.Println("")
	fmt.Println("Coming soon: sample, estimate, bench")
}

// runTrain fits a SamplerQNN with a parity interpret on the 2-bit
// parity dataset, a small end-to-end smoke run of the whole stack.
func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	epochs := fs.Int("epochs", 40, "training epochs")
	lr := fs.Float64("lr", 0.1, "learning rate")
	seed := fs.Uint64("seed", 7, "weight init seed")
	ckpt := fs.String("checkpoint", "", "write final weights to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.DebugLevel)

	qc := circuit.NewQNNCircuit(2)
	net, err := qnn.NewSamplerQNNFromQNNCircuit(qc,
		qnn.WithInterpret(qnn.Parity, 2),
	)
	if err != nil {
		return err
	}

	x := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := []int{0, 1, 1, 0}

	clf := learn.NewClassifier(net, learn.TrainConfig{
		Optimizer: optim.NewAdam(optim.AdamConfig{LR: *lr}),
		Loss:      learn.CrossEntropy{},
		Epochs:    *epochs,
		Seed:      *seed,
		Logger:    log,
	})
	if err := clf.Fit(x, y); err != nil {
		return err
	}

	acc, err := clf.Score(x, y)
	if err != nil {
		return err
	}
	log.Info().Float64("accuracy", acc).Msg("training finished")

	if *ckpt != "" {
		err := learn.SaveCheckpoint(*ckpt, &learn.Checkpoint{
			Weights: clf.Weights(),
			Epoch:   *epochs,
		})
		if err != nil {
			return err
		}
		log.Info().Str("path", *ckpt).Msg("checkpoint written")
	}
	return nil
}
