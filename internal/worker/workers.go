package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/pkg/bpe"
	"github.com/askiada/go-dataprep/pkg/dataprep"
	"github.com/askiada/go-dataprep/pkg/dataset"
)

// Data is what the argument templates of a worker are rendered with.
type Data struct {
	Name string
	// Src is the raw dataset for the parser, the previous artifact otherwise.
	Src string
	// Dest is the staging path of the artifact, moved in place once the command succeeds.
	Dest string
	BPE  *bpe.CustomConfig

	// Files and FilesList are only set for vocabulary workers.
	// FilesList is a file listing Files, one per line.
	Files     []string
	FilesList string
}

// Parser parses raw projects with an external command.
type Parser struct {
	cmd *Command
}

func NewParser(cmd *Command) *Parser {
	return &Parser{cmd: cmd}
}

// Parse runs the command into the parsed directory, then marks it ready.
func (p *Parser) Parse(ctx context.Context, ds dataprep.Dataset) error {
	return runStaged(ds.Parsed().Path(), true, func(staging string) error {
		return p.cmd.Run(ctx, Data{Name: ds.Name(), Src: ds.RawPath(), Dest: staging})
	})
}

// Converter converts parsed projects to their token representation with an external command.
type Converter struct {
	cmd *Command
}

func NewConverter(cmd *Command) *Converter {
	return &Converter{cmd: cmd}
}

// Convert runs the command into the preprocessed directory, then marks it ready.
func (c *Converter) Convert(ctx context.Context, ds dataprep.Dataset, cfg *bpe.CustomConfig) error {
	return runStaged(ds.Preprocessed().Path(), true, func(staging string) error {
		return c.cmd.Run(ctx, Data{Name: ds.Name(), Src: ds.Parsed().Path(), Dest: staging, BPE: cfg})
	})
}

// VocabCalculator computes a vocabulary file with an external command.
type VocabCalculator struct {
	cmd *Command
}

func NewVocabCalculator(cmd *Command) *VocabCalculator {
	return &VocabCalculator{cmd: cmd}
}

// Calc runs the command over files. The vocabulary file is ready as soon as it is committed.
func (v *VocabCalculator) Calc(ctx context.Context, srcPath string, files []string, destPath string) error {
	return runStaged(destPath, false, func(staging string) error {
		list, err := os.CreateTemp(filepath.Dir(destPath), ".files-*")
		if err != nil {
			return errors.Wrap(err, "unable to create files list")
		}
		defer os.Remove(list.Name())

		_, err = list.WriteString(strings.Join(files, "\n") + "\n")
		if err != nil {
			list.Close()
			return errors.Wrap(err, "unable to write files list")
		}

		err = list.Close()
		if err != nil {
			return errors.Wrap(err, "unable to close files list")
		}

		return v.cmd.Run(ctx, Data{Src: srcPath, Dest: staging, Files: files, FilesList: list.Name()})
	})
}

// runStaged lets write produce the artifact at its staging path, then commits it onto dest.
// Nothing reaches dest when write fails. Errors of write are returned unchanged.
func runStaged(dest string, isDir bool, write func(staging string) error) error {
	staging, err := dataset.PrepareStaging(dest, isDir)
	if err != nil {
		return err
	}

	err = write(staging)
	if err == nil {
		err = dataset.CommitStaging(dest)
	}

	if err != nil {
		_ = dataset.DiscardStaging(dest)
		return err
	}

	return dataset.MarkPathReady(dest)
}

var (
	_ dataprep.ProjectParser   = (*Parser)(nil)
	_ dataprep.ReprConverter   = (*Converter)(nil)
	_ dataprep.VocabCalculator = (*VocabCalculator)(nil)
)
