package clickhouse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// VersionInfo represents parsed ClickHouse version information
type VersionInfo struct {
	Major int    // Major version number (e.g., 25)
	Minor int    // Minor version number (e.g., 7)
	Patch int    // Patch version number (e.g., 1)
	Raw   string // Raw version string from ClickHouse
}

// String returns the version as a string in format "major.minor.patch"
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsAtLeast checks if this version is at least the specified version
func (v VersionInfo) IsAtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// GetVersion retrieves and parses the ClickHouse version from the server
func (c *Client) GetVersion(ctx context.Context) (*VersionInfo, error) {
	var versionStr string
	if err := c.conn.QueryRow(ctx, "SELECT version()").Scan(&versionStr); err != nil {
		return nil, errors.Wrap(err, "failed to query ClickHouse version")
	}

	version, err := parseVersion(versionStr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse ClickHouse version: %s", versionStr)
	}

	return version, nil
}

// parseVersion parses a ClickHouse version string. Accepted forms include:
//   - "25.7.1.3997" (standard)
//   - "22.8.2.11-testing" (with suffix)
//   - "21.10.3.9 (official build)" (with description)
func parseVersion(versionStr string) (*VersionInfo, error) {
	cleaned := strings.TrimSpace(versionStr)
	if i := strings.IndexAny(cleaned, " -"); i != -1 {
		cleaned = cleaned[:i]
	}

	matches := versionRegex.FindStringSubmatch(cleaned)
	if matches == nil {
		return nil, errors.Errorf("invalid version format: %s", versionStr)
	}

	parts := [3]int{}
	for i, m := range matches[1:4] {
		if m == "" {
			continue
		}

		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version component: %s", m)
		}

		parts[i] = n
	}

	return &VersionInfo{Major: parts[0], Minor: parts[1], Patch: parts[2], Raw: versionStr}, nil
}
