package v1alpha1

import (
	"fmt"
	"regexp"
)

// StackNamePattern matches identifiers that keep the derived registry name valid for ECR:
// lowercase alphanumeric components separated by single '.', '_' or '-'.
const StackNamePattern = `^[a-z0-9]+(?:[._-][a-z0-9]+)*$`

var stackNameRegex = regexp.MustCompile(StackNamePattern)

// StackNameMaxLength leaves room for the longest derived suffix within ECR's 256 character limit.
const StackNameMaxLength = 200

// ValidateStackName validates that a stack identifier can prefix every derived resource name.
func ValidateStackName(name string) error {
	if name == "" {
		return ErrStackNameEmpty
	}

	if len(name) > StackNameMaxLength {
		return fmt.Errorf(
			"%w: %q exceeds max %d characters (got %d)",
			ErrStackNameInvalid, name, StackNameMaxLength, len(name),
		)
	}

	if !stackNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must consist of lowercase letters and numbers separated by '.', '_' or '-'",
			ErrStackNameInvalid, name,
		)
	}

	return nil
}

// Validate checks the config for values no declaration can be built from.
func (c StackConfig) Validate() error {
	err := ValidateStackName(c.Name)
	if err != nil {
		return err
	}

	if c.BuildContext == "" {
		return ErrBuildContextEmpty
	}

	if c.Dockerfile == "" {
		return ErrDockerfileEmpty
	}

	return nil
}
