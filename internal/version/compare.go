package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

// CheckConfigCompatibility checks whether a chart configuration written for
// configVersion can be loaded by a library at libraryVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The config's minor version must not be newer than the library's
//   - Patch versions are ignored
//
// Examples:
//   - Library 0.4.0, Config 0.4.2 -> OK (patch differs)
//   - Library 0.4.0, Config 0.3.0 -> OK (older config)
//   - Library 0.4.0, Config 0.5.0 -> ERROR (config uses newer options)
//   - Library 1.0.0, Config 0.4.0 -> ERROR (major differs)
func CheckConfigCompatibility(libraryVersion, configVersion string) error {
	libraryVersion = strings.TrimPrefix(libraryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if libraryVersion == "main" || configVersion == "main" {
		return nil
	}

	librarySemver, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if librarySemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: library is %d.x.x but config targets %d.x.x",
			librarySemver.Major(), configSemver.Major())
	}

	if configSemver.Minor() > librarySemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "config targets %d.%d.x which is newer than library %d.%d.x",
			configSemver.Major(), configSemver.Minor(),
			librarySemver.Major(), librarySemver.Minor())
	}

	return nil
}
