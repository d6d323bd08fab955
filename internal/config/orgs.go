package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoadOrganizations reads an organization list from a file, one name per
// line. Blank lines are skipped with a warning.
func LoadOrganizations(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening organizations file: %w", err)
	}
	defer file.Close()

	var orgs []string
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		org := strings.TrimSpace(scanner.Text())
		if org == "" {
			logrus.WithFields(logrus.Fields{
				"file": path,
				"line": line,
			}).Warn("empty organization name in file, skipping")
			continue
		}
		orgs = append(orgs, org)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading organizations file: %w", err)
	}
	return orgs, nil
}
