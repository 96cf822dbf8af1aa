package aws

import (
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

// Credentials holds one named profile's key pair from the credentials file.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// LoadProfiles reads every named profile from the INI credentials file at
// path. The implicit DEFAULT section is dropped. Keys are not validated; a
// profile missing a key carries it as an empty string.
func LoadProfiles(path string) (map[string]Credentials, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file %s: %w", path, err)
	}

	profiles := make(map[string]Credentials)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		profiles[section.Name()] = Credentials{
			AccessKeyID:     section.Key("aws_access_key_id").String(),
			SecretAccessKey: section.Key("aws_secret_access_key").String(),
		}
	}

	return profiles, nil
}

// ResolveProfile looks up a single profile by name. An absent profile is
// reported through the boolean, not as an error.
func ResolveProfile(path, name string) (Credentials, bool, error) {
	profiles, err := LoadProfiles(path)
	if err != nil {
		return Credentials{}, false, err
	}
	creds, ok := profiles[name]
	return creds, ok, nil
}

// ProfileNames returns the sorted names of all profiles in the credentials
// file at path.
func ProfileNames(path string) ([]string, error) {
	profiles, err := LoadProfiles(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
