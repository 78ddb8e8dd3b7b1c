package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "modforge",
	Short: "Build, track, and deploy versioned mod artifacts",
	Long: `modforge manages the build and deployment lifecycle of server mods:
  - compiles plugin projects via the external toolchain
  - packages datapack directories into versioned archives
  - tracks per-project build history with retention pruning
  - deploys one live build per project into the server directory
  - exports and imports shareable modpack and world-mods archives`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modforge/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "modforge")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "modforge")
	viper.SetDefault("data.dir", dataDir)
	viper.SetDefault("builds.plugins_root", filepath.Join(dataDir, "builds", "plugins"))
	viper.SetDefault("builds.datapacks_root", filepath.Join(dataDir, "builds", "datapacks"))
	viper.SetDefault("builds.retention", 10)
	viper.SetDefault("builds.log_limit", 65536)
	viper.SetDefault("build.command", "gradle")
	viper.SetDefault("build.args", []string{"build"})
	viper.SetDefault("build.output_dir", "build/libs")
	viper.SetDefault("build.toolchain_home", "")
	viper.SetDefault("deploy.plugins_dir", "")
	viper.SetDefault("deploy.datapacks_dir", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
