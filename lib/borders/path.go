// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package borders

import (
	"fmt"
	"strconv"
)

// Vec is a point in SVG user units.
type Vec struct {
	X, Y float64
}

// Line is a straight path segment in SVG user units.
type Line struct {
	Start, End Vec
}

// parameterCounts is the number of numbers each path command takes per
// repetition.
var parameterCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// Lines returns the straight segments of path data d in drawing order.
func Lines(d string) ([]Line, error) {
	scanner := pathScanner{data: d}
	var (
		lines   []Line
		current Vec
		start   Vec
		command byte
	)
	for {
		scanner.skipSeparators()
		if scanner.done() {
			return lines, nil
		}
		if letter := scanner.peek(); isCommand(letter) {
			command = letter
			scanner.position++
		} else if command == 0 {
			return nil, fmt.Errorf("path data at %d: expected a command, got %q", scanner.position, letter)
		}

		upper := command &^ 0x20
		relative := command != upper
		count := parameterCounts[upper]
		if upper == 'Z' {
			current = start
			command = 0
			continue
		}

		values := make([]float64, count)
		for i := range values {
			flag := upper == 'A' && (i == 3 || i == 4)
			value, err := scanner.number(flag)
			if err != nil {
				return nil, fmt.Errorf("path data %q command %c: %w", d, command, err)
			}
			values[i] = value
		}

		target := current
		switch upper {
		case 'H':
			target.X = values[0]
			if relative {
				target.X += current.X
			}
		case 'V':
			target.Y = values[0]
			if relative {
				target.Y += current.Y
			}
		default:
			target = Vec{X: values[count-2], Y: values[count-1]}
			if relative {
				target.X += current.X
				target.Y += current.Y
			}
		}

		switch upper {
		case 'M':
			start = target
			// Further coordinate pairs after a moveto are lines.
			if relative {
				command = 'l'
			} else {
				command = 'L'
			}
		case 'L', 'H', 'V':
			lines = append(lines, Line{Start: current, End: target})
		}
		current = target
	}
}

func isCommand(c byte) bool {
	_, ok := parameterCounts[c&^0x20]
	return ok && (c|0x20) >= 'a' && (c|0x20) <= 'z'
}

// pathScanner reads numbers out of SVG path data, which allows
// separators to be omitted wherever the grammar is unambiguous
// ("10-5", "1.5.5", arc flags written as "01").
type pathScanner struct {
	data     string
	position int
}

func (s *pathScanner) done() bool { return s.position >= len(s.data) }

func (s *pathScanner) peek() byte { return s.data[s.position] }

func (s *pathScanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.position++
		default:
			return
		}
	}
}

// number scans the next number. A flag is a single '0' or '1'.
func (s *pathScanner) number(flag bool) (float64, error) {
	s.skipSeparators()
	if s.done() {
		return 0, fmt.Errorf("missing number at end of data")
	}
	begin := s.position
	if flag {
		switch s.peek() {
		case '0':
			s.position++
			return 0, nil
		case '1':
			s.position++
			return 1, nil
		default:
			return 0, fmt.Errorf("arc flag at %d must be 0 or 1", begin)
		}
	}

	if c := s.peek(); c == '+' || c == '-' {
		s.position++
	}
	digits := s.digits()
	if !s.done() && s.peek() == '.' {
		s.position++
		digits += s.digits()
	}
	if digits == 0 {
		return 0, fmt.Errorf("expected a number at %d", begin)
	}
	if !s.done() && (s.peek() == 'e' || s.peek() == 'E') {
		mark := s.position
		s.position++
		if !s.done() && (s.peek() == '+' || s.peek() == '-') {
			s.position++
		}
		if s.digits() == 0 {
			// Not an exponent after all.
			s.position = mark
		}
	}
	value, err := strconv.ParseFloat(s.data[begin:s.position], 64)
	if err != nil {
		return 0, fmt.Errorf("number at %d: %w", begin, err)
	}
	return value, nil
}

func (s *pathScanner) digits() int {
	count := 0
	for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
		s.position++
		count++
	}
	return count
}
