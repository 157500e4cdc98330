package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	lineSuffixSeparatorConstant            = ":"
	lineRangeSeparatorConstant             = ","
	pathSpecErrorTemplateConstant          = "invalid line suffix in %q: %s"
	emptyLineComponentReasonConstant       = "empty line number"
	nonPositiveLineReasonTemplateConstant  = "line number %d must be positive"
	invertedRangeReasonTemplateConstant    = "line %d precedes line %d"
	tooManyComponentsReasonConstant        = "at most two line numbers are allowed"
	lineSuffixCharacterSetConstant         = "0123456789,"
	nonNumericComponentTemplateConstant    = "line number %q is not numeric"
)

// LineRange selects a line or an inclusive span of lines; zero values mean absent.
type LineRange struct {
	Start int
	End   int
}

// IsZero reports whether no line selection is present.
func (lineRange LineRange) IsZero() bool {
	return lineRange.Start == 0 && lineRange.End == 0
}

// PathSpec is a parsed path argument with an optional line selection.
type PathSpec struct {
	Path  string
	Lines LineRange
}

// PathSpecParseError indicates a path argument carried a malformed line suffix.
type PathSpecParseError struct {
	Input  string
	Reason string
}

// Error describes the rejected argument.
func (parseError PathSpecParseError) Error() string {
	return fmt.Sprintf(pathSpecErrorTemplateConstant, parseError.Input, parseError.Reason)
}

// ParsePathSpec splits a path[:start[,end]] argument into a PathSpec.
// A trailing colon segment made of digits and commas is treated as the line
// selection; any other colon is part of the path itself.
func ParsePathSpec(argument string) (PathSpec, error) {
	separatorIndex := strings.LastIndex(argument, lineSuffixSeparatorConstant)
	if separatorIndex < 0 {
		return PathSpec{Path: argument}, nil
	}

	lineSuffix := argument[separatorIndex+1:]
	if len(lineSuffix) == 0 || !containsOnlyLineSuffixCharacters(lineSuffix) {
		return PathSpec{Path: argument}, nil
	}

	lineRange, parseError := parseLineRange(argument, lineSuffix)
	if parseError != nil {
		return PathSpec{}, parseError
	}
	return PathSpec{Path: argument[:separatorIndex], Lines: lineRange}, nil
}

func containsOnlyLineSuffixCharacters(lineSuffix string) bool {
	for _, suffixCharacter := range lineSuffix {
		if !strings.ContainsRune(lineSuffixCharacterSetConstant, suffixCharacter) {
			return false
		}
	}
	return true
}

func parseLineRange(argument string, lineSuffix string) (LineRange, error) {
	lineComponents := strings.Split(lineSuffix, lineRangeSeparatorConstant)
	if len(lineComponents) > 2 {
		return LineRange{}, PathSpecParseError{Input: argument, Reason: tooManyComponentsReasonConstant}
	}

	lineNumbers := make([]int, 0, len(lineComponents))
	for _, lineComponent := range lineComponents {
		if len(lineComponent) == 0 {
			return LineRange{}, PathSpecParseError{Input: argument, Reason: emptyLineComponentReasonConstant}
		}
		lineNumber, conversionError := strconv.Atoi(lineComponent)
		if conversionError != nil {
			return LineRange{}, PathSpecParseError{
				Input:  argument,
				Reason: fmt.Sprintf(nonNumericComponentTemplateConstant, lineComponent),
			}
		}
		if lineNumber <= 0 {
			return LineRange{}, PathSpecParseError{
				Input:  argument,
				Reason: fmt.Sprintf(nonPositiveLineReasonTemplateConstant, lineNumber),
			}
		}
		lineNumbers = append(lineNumbers, lineNumber)
	}

	parsedRange := LineRange{Start: lineNumbers[0]}
	if len(lineNumbers) == 2 {
		if lineNumbers[1] < lineNumbers[0] {
			return LineRange{}, PathSpecParseError{
				Input:  argument,
				Reason: fmt.Sprintf(invertedRangeReasonTemplateConstant, lineNumbers[1], lineNumbers[0]),
			}
		}
		parsedRange.End = lineNumbers[1]
	}
	return parsedRange, nil
}
