package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/reactiveparty/cmd/codegen/templates"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	generatedHeader = "// Code generated by codegen. DO NOT EDIT.\n"
	digestPrefix    = "// digest: "
)

var (
	errHandEdited = errors.New("generated file was edited by hand")
	errStale      = errors.New("generated file is out of date")
)

// render produces the formatted file for cfg, stamped with a digest of its
// body so hand edits can be detected later.
func render(cfg *templates.Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	body, err := format.Source([]byte(templates.AccessorsGen(cfg)))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	fmt.Fprintf(&buf, "%s%016x\n\n", digestPrefix, xxhash.Sum64(body))
	buf.Write(body)
	return buf.Bytes(), nil
}

// verifyDigest checks that the body of a previously generated file still
// matches the digest in its header.
func verifyDigest(contents []byte) error {
	rest, ok := bytes.CutPrefix(contents, []byte(generatedHeader+digestPrefix))
	if !ok {
		return fmt.Errorf("%w: missing header", errHandEdited)
	}
	line, body, ok := bytes.Cut(rest, []byte("\n\n"))
	if !ok {
		return fmt.Errorf("%w: missing body", errHandEdited)
	}
	want, err := strconv.ParseUint(string(line), 16, 64)
	if err != nil {
		return fmt.Errorf("%w: bad digest %q", errHandEdited, line)
	}
	if got := xxhash.Sum64(body); got != want {
		return fmt.Errorf("%w: digest %016x, body hashes to %016x", errHandEdited, want, got)
	}
	return nil
}

// writeGenerated writes contents to path unless the file already holds
// them. A file whose body no longer matches its digest is only replaced
// when force is set.
func writeGenerated(path string, contents []byte, force bool) (changed bool, err error) {
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("read %s: %w", path, err)
	case bytes.Equal(existing, contents):
		return false, nil
	default:
		if err := verifyDigest(existing); err != nil && !force {
			return false, fmt.Errorf("%s: %w (use --force to overwrite)", path, err)
		}
	}

	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// checkGenerated reports whether path already holds contents, returning a
// unified diff when it does not.
func checkGenerated(path string, contents []byte) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", errStale, err)
	}
	if bytes.Equal(existing, contents) {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(contents)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", path, err)
	}
	return fmt.Errorf("%w: %s\n%s", errStale, path, diff)
}
