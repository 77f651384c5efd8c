// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package learn provides the public API for training quantum neural
// networks.
//
// Classifier and Regressor wrap any qnn.NeuralNetwork with a
// scikit-style Fit/Predict/Score loop:
//
//	clf := learn.NewClassifier(net, learn.TrainConfig{Epochs: 30})
//	if err := clf.Fit(x, y); err != nil {
//	    log.Fatal(err)
//	}
//	acc, err := clf.Score(x, y)
package learn

import (
	"github.com/bloch-ml/bloch/internal/learn"
	"github.com/bloch-ml/bloch/internal/qnn"
)

// TrainConfig configures a training run. Zero values select the
// defaults.
type TrainConfig = learn.TrainConfig

// Loss scores predictions against targets and supplies the gradient
// of the score with respect to predictions.
type Loss = learn.Loss

// SquaredError is the mean squared error loss.
type SquaredError = learn.SquaredError

// CrossEntropy is the cross-entropy loss over probability outputs.
type CrossEntropy = learn.CrossEntropy

// Classifier trains a network for classification.
type Classifier = learn.Classifier

// Regressor trains a single-output network for regression.
type Regressor = learn.Regressor

// Checkpoint is a serializable training snapshot.
type Checkpoint = learn.Checkpoint

// NewClassifier creates a classifier over a network.
func NewClassifier(net qnn.NeuralNetwork, cfg TrainConfig) *Classifier {
	return learn.NewClassifier(net, cfg)
}

// NewRegressor creates a regressor over a network. The network must
// have a single output.
func NewRegressor(net qnn.NeuralNetwork, cfg TrainConfig) (*Regressor, error) {
	return learn.NewRegressor(net, cfg)
}

// SaveCheckpoint writes a checkpoint to path.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	return learn.SaveCheckpoint(path, ck)
}

// LoadCheckpoint reads a checkpoint from path.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	return learn.LoadCheckpoint(path)
}
