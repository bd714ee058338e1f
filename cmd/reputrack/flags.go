package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type AppFlags struct {
	GlobalConfigFile string
	KeywordsFile     string
	ClientID         string
	ClientName       string
	Region           string
	Mode             string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	keywordsFile := flag.String("keywords", "", "Path to a text file containing keywords to track, one per line. Overrides scan_config.keywords from the config file.")
	keywordsFileAlias := flag.String("k", "", "Alias for -keywords")

	clientID := flag.String("client", "", "Client identifier to scan for (overrides config file if set)")
	clientName := flag.String("client-name", "", "Client display name used in search queries (overrides config file if set)")

	region := flag.String("region", "", "Region code for the search, e.g. US or UAE (overrides config file if set)")
	regionAlias := flag.String("r", "", "Alias for -region")

	modeFlag := flag.String("mode", "", "Mode to run the tool: onetime or scheduled (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	flag.Parse()

	flags := AppFlags{
		KeywordsFile: *keywordsFile,
		ClientID:     *clientID,
		ClientName:   *clientName,
		Region:       *region,
		Mode:         *modeFlag,
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if flags.KeywordsFile == "" {
		flags.KeywordsFile = *keywordsFileAlias
	}
	if flags.Region == "" {
		flags.Region = *regionAlias
	}
	if flags.Mode == "" {
		flags.Mode = *modeFlagAlias
	}

	return flags
}

// ReadKeywordsFromFile loads keywords from a text file, one per line. Blank
// lines and lines starting with # are skipped.
func ReadKeywordsFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file %s: %w", path, err)
	}

	var keywords []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keywords = append(keywords, line)
	}
	return keywords, nil
}
