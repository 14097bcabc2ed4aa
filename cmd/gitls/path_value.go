package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// pathValueType represents the type of a path
type pathValueType int

const (
	// pathValueTypeFile represent file
	pathValueTypeFile pathValueType = iota
	// pathValueTypeDir represent a directory
	pathValueTypeDir
	// pathValueTypeAny represent a either a file or a directory
	pathValueTypeAny
)

var (
	// errIsDirectory is an error returned when a path
	// points to a directory instead of a file
	errIsDirectory = errors.New("path is a directory")
	// errIsNotDirectory is an error returned when a path
	// is expected to points to a directory but isn't
	errIsNotDirectory = errors.New("path is not a directory")
	// errUnknownPathType is an error returned when an unknown
	// pathValueType is provided to a method
	errUnknownPathType = errors.New("type unknown")
)

// pathValue represents a Flag value to be parsed by spf13/pflag
type pathValue struct {
	defaultValue  string
	userValue     string
	typ           pathValueType
	pathMustExist bool
	valueSet      bool
}

// newDirPathFlagWithDefault returns a new Flag Value that should hold
// a valid path to a directory
func newDirPathFlagWithDefault(defaultPath string) pflag.Value {
	return &pathValue{
		pathMustExist: true,
		typ:           pathValueTypeDir,
		defaultValue:  defaultPath,
	}
}

// newFilePathFlagWithDefault returns a new Flag Value that should hold
// a valid path to a file
func newFilePathFlagWithDefault(defaultPath string) pflag.Value {
	return &pathValue{
		pathMustExist: true,
		typ:           pathValueTypeFile,
		defaultValue:  defaultPath,
	}
}

// newPathFlagWithDefault returns a new Flag Value that should hold
// a valid path to either a file or a directory
func newPathFlagWithDefault(defaultPath string) pflag.Value {
	return &pathValue{
		pathMustExist: true,
		typ:           pathValueTypeAny,
		defaultValue:  defaultPath,
	}
}

var _ pflag.Value = (*pathValue)(nil)

// String returns the flag's value
func (v *pathValue) String() string {
	if v.valueSet {
		return v.userValue
	}
	return v.defaultValue
}

// Set sets the flag's value.
// When called multiple times:
// - If the value is a relative path it will be append to the previous value
// - If the value is an absolute path: it will overwrite the previous value
func (v *pathValue) Set(value string) (err error) {
	if value == "" {
		return nil
	}

	if !filepath.IsAbs(value) {
		value = filepath.Join(v.userValue, value)
	}
	value, err = filepath.Abs(value)
	if err != nil {
		return fmt.Errorf("could not find absolute path: %w", err)
	}

	info, err := os.Stat(value)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not check path %s: %w", value, err)
	}

	if v.pathMustExist && errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("invalid path %s: %w", value, os.ErrNotExist)
	}

	if info != nil {
		switch v.typ {
		case pathValueTypeFile:
			if info.IsDir() {
				return fmt.Errorf("invalid path %s: %w", value, errIsDirectory)
			}
		case pathValueTypeDir:
			if !info.IsDir() {
				return fmt.Errorf("invalid path %s: %w", value, errIsNotDirectory)
			}
		case pathValueTypeAny:
		default:
			return fmt.Errorf("type %d: %w", v.typ, errUnknownPathType)
		}
	}

	v.valueSet = true
	v.userValue = value
	return nil
}

// Type returns the unique type of the Value
func (v *pathValue) Type() string {
	return "path"
}
