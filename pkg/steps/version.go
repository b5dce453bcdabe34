package steps

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

// versionPattern finds a dotted version inside paths such as
// C:\VulkanSDK\1.2.170.0 or tool output such as "Python 3.11.4".
var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// extractVersion returns the first version found in s.
func extractVersion(s string) (*semver.Version, bool) {
	match := versionPattern.FindString(s)
	if match == "" {
		return nil, false
	}
	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, false
	}
	return v, true
}

// requireVersion fails with KindVersionInsufficient when found is older than minimum.
func requireVersion(what string, found *semver.Version, minimum string) error {
	if minimum == "" {
		return nil
	}
	want, err := semver.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q for %s: %w", minimum, what, err)
	}
	if found.LessThan(want) {
		return sequencer.Errorf(sequencer.KindVersionInsufficient, "%s %s is older than the required %s", what, found, want)
	}
	return nil
}
