// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command corpusprep builds the wordhint corpus from Google Books 1-gram files.
//
// Counts are summed per lower-cased word across years and files, part-of-speech tags are
// dropped, and words seen fewer than -cutoff times are left out. The result is written as
// "word frequency" lines and, optionally, as a msgpack snapshot:
//
//	corpusprep -raw 'data/raw/1-*.gz' -out data/processed/word_frequency.txt \
//	    -snapshot data/processed/word_frequency.msgpack
package main

import (
	"bufio"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bastiangx/wordhint/internal/utils"
	"github.com/bastiangx/wordhint/pkg/config"
	"github.com/bastiangx/wordhint/pkg/corpus"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
)

func main() {
	defaults := config.DefaultConfig()

	raw := flag.String("raw", filepath.Join("data", "raw", "*"), "Glob of 1-gram files (plain or .gz)")
	out := flag.String("out", defaults.Corpus.Path, "Text corpus to write")
	snapshot := flag.String("snapshot", "", "Optional msgpack snapshot to write")
	cutoff := flag.Int64("cutoff", int64(defaults.Corpus.FrequencyCutoff), "Drop words seen fewer times than this")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	log.SetReportTimestamp(false)

	if err := run(*raw, *out, *snapshot, *cutoff); err != nil {
		log.Fatalf("corpusprep: %v", err)
	}
}

func run(rawGlob, out, snapshot string, cutoff int64) error {
	files, err := filepath.Glob(rawGlob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %s", rawGlob)
	}

	counter := corpus.NewNgramCounter()
	for _, path := range files {
		start := time.Now()
		if err := countFile(counter, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Info("processed", "file", filepath.Base(path), "words", counter.Len(), "took", time.Since(start).Round(time.Millisecond))
	}

	entries := counter.Entries(cutoff)
	log.Infof("%s words at or above the cutoff of %s", utils.FormatWithCommas(int64(len(entries))), utils.FormatWithCommas(cutoff))

	if err := writeCorpus(out, corpus.FormatText, entries); err != nil {
		return err
	}
	if snapshot != "" {
		if err := writeCorpus(snapshot, corpus.FormatSnapshot, entries); err != nil {
			return err
		}
	}
	return nil
}

func countFile(counter *corpus.NgramCounter, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var r io.Reader = bufio.NewReaderSize(file, 1<<20)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}
	_, err = counter.ReadFrom(r)
	return err
}

func writeCorpus(path string, format corpus.FileFormat, entries []rank.MatchResult) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := corpus.SaveFile(path, format, entries); err != nil {
		return err
	}
	log.Infof("Wrote %s (%s)", utils.GetAbsolutePath(path), format)
	return nil
}
