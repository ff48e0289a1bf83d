package dataprep

import (
	"github.com/pkg/errors"
)

var (
	ErrDatasetMustBeSet   = errors.New("dataset must be set")
	ErrParserMustBeSet    = errors.New("parser must be set")
	ErrConverterMustBeSet = errors.New("converter must be set")
	ErrVocabMustBeSet     = errors.New("vocab calculator must be set")
	ErrResourceMustBeSet  = errors.New("resource must be set")
)
