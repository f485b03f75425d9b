package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/audionut/upload-assistant-go/pkg/core/unit3d"
)

// defaultTracker is used when --tracker is not given.
const defaultTracker = "otw"

var (
	// Used for flags.
	cfgFile     string
	trackerName string

	// RootCmd represents the base command when called without any
	// subcommands. Exported for use in tests.
	RootCmd = &cobra.Command{
		Use:   "uploadassistant",
		Short: "Upload media releases to a private tracker and resolve show metadata.",
		Long: `uploadassistant stages a media release, resolves its show identity
against TVmaze, checks the tracker for duplicate listings, and uploads
the release (torrent plus metadata) to the tracker's API.`,
		// PersistentPreRun runs after viper has loaded everything, so the
		// API key prompt sees the final config.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			checkAndPromptAPIKey()
		},
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.uploadassistant/config.yaml or ./config.yaml)")
	RootCmd.PersistentFlags().StringVar(&trackerName, "tracker", defaultTracker, "tracker section of the config to use")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".uploadassistant")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("UA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config yet; checkAndPromptAPIKey handles the empty key.
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// trackerKey builds the viper key for a per-tracker setting.
func trackerKey(name, field string) string {
	return fmt.Sprintf("trackers.%s.%s", strings.ToLower(name), field)
}

// trackerConfig assembles the unit3d config for the selected tracker
// from viper.
func trackerConfig(name string) unit3d.Config {
	return unit3d.Config{
		Name:           strings.ToUpper(name),
		SourceFlag:     viper.GetString(trackerKey(name, "source_flag")),
		BaseURL:        strings.TrimSuffix(viper.GetString(trackerKey(name, "base_url")), "/"),
		APIKey:         viper.GetString(trackerKey(name, "api_key")),
		AnnounceURL:    viper.GetString(trackerKey(name, "announce_url")),
		Anonymous:      viper.GetBool(trackerKey(name, "anonymous")),
		Internal:       viper.GetBool(trackerKey(name, "internal")),
		InternalGroups: viper.GetStringSlice(trackerKey(name, "internal_groups")),
	}
}

// checkAndPromptAPIKey checks whether the selected tracker has an API
// key configured and prompts for one if not, persisting the config.
func checkAndPromptAPIKey() {
	keyName := trackerKey(trackerName, "api_key")
	if viper.GetString(keyName) != "" {
		return
	}

	fmt.Printf("API key for tracker %q not found.\n", strings.ToUpper(trackerName))
	fmt.Print("Please enter your API key: ")

	reader := bufio.NewReader(os.Stdin)
	inputKey, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read API key: %v", err)
	}
	inputKey = strings.TrimSpace(inputKey)
	if inputKey == "" {
		log.Fatalf("API key cannot be empty.")
	}

	viper.Set(keyName, inputKey)

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Could not get home directory: %v", err)
	}
	configDir := filepath.Join(home, ".uploadassistant")
	configPath := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0750); err != nil {
		log.Fatalf("Could not create config directory %s: %v", configDir, err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		log.Fatalf("Failed to save API key to %s: %v", configPath, err)
	}

	fmt.Printf("API key saved to %s\n", configPath)
	fmt.Println("Please re-run your command.")
	os.Exit(0)
}
