package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SizeUnit is how a Size relates to its container
type SizeUnit int

const (
	SizeAuto SizeUnit = iota
	SizePixels
	SizePercent
)

// Size is a length such as "auto", "480", "480px" or "50%"
type Size struct {
	Value float64
	Unit  SizeUnit
}

// ParseSize parses a size string. Empty means auto.
func ParseSize(s string) (Size, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return Size{}, nil
	}

	unit := SizePixels
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit = SizePercent
		num = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q", s)
	}
	if v < 0 {
		return Size{}, fmt.Errorf("negative size %q", s)
	}
	return Size{Value: v, Unit: unit}, nil
}

// Resolve converts the size to pixels within a container. ok is false for auto.
func (s Size) Resolve(container float64) (px float64, ok bool) {
	switch s.Unit {
	case SizePixels:
		return s.Value, true
	case SizePercent:
		return container * s.Value / 100, true
	default:
		return 0, false
	}
}

// ResolveOr resolves the size, using fallback for auto
func (s Size) ResolveOr(container, fallback float64) float64 {
	if px, ok := s.Resolve(container); ok {
		return px
	}
	return fallback
}

// Absolute reports whether the size is a fixed pixel length
func (s Size) Absolute() bool {
	return s.Unit == SizePixels
}

func (s Size) String() string {
	switch s.Unit {
	case SizePixels:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "px"
	case SizePercent:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "%"
	default:
		return "auto"
	}
}

// SizeSpec is a size as written in the configuration file. JSON accepts a
// number of pixels or a string; it is parsed during validation so a bad value
// only produces a warning.
type SizeSpec string

func (s *SizeSpec) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = SizeSpec(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		*s = SizeSpec(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("size must be a number or a string, got %s", string(data))
	}
	return nil
}

// Parse converts s into a Size; empty means auto
func (s SizeSpec) Parse() (Size, error) {
	return ParseSize(string(s))
}
