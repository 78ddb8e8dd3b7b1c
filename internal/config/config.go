package config

import (
	"github.com/spf13/viper"

	"modforge/internal/models"
)

// GetDataDir returns the directory holding profiles and other app data
func GetDataDir() string {
	return viper.GetString("data.dir")
}

// GetPluginsBuildRoot returns the builds root for compiled packages
func GetPluginsBuildRoot() string {
	return viper.GetString("builds.plugins_root")
}

// GetDatapacksBuildRoot returns the builds root for archive packages
func GetDatapacksBuildRoot() string {
	return viper.GetString("builds.datapacks_root")
}

// GetBuildsRoots returns every configured builds root, one per artifact kind
func GetBuildsRoots() []string {
	return []string{GetPluginsBuildRoot(), GetDatapacksBuildRoot()}
}

// GetRetention returns the per-project artifact retention limit
func GetRetention() int {
	return viper.GetInt("builds.retention")
}

// GetLogLimit returns the captured build output ceiling in bytes
func GetLogLimit() int {
	return viper.GetInt("builds.log_limit")
}

// GetBuildCommand returns the external build command
func GetBuildCommand() string {
	return viper.GetString("build.command")
}

// GetBuildArgs returns the arguments passed to the build command
func GetBuildArgs() []string {
	return viper.GetStringSlice("build.args")
}

// GetBuildOutputDir returns the tool output directory relative to a project
func GetBuildOutputDir() string {
	return viper.GetString("build.output_dir")
}

// GetToolchainHome returns the preferred toolchain installation, if any
func GetToolchainHome() string {
	return viper.GetString("build.toolchain_home")
}

// GetPluginsDeployDir returns the live plugins directory
func GetPluginsDeployDir() string {
	return viper.GetString("deploy.plugins_dir")
}

// GetDatapacksDeployDir returns the live datapacks directory
func GetDatapacksDeployDir() string {
	return viper.GetString("deploy.datapacks_dir")
}

// GetDeployDirFor returns the configured deployment directory for an
// artifact type; empty when not configured
func GetDeployDirFor(t models.ArtifactType) string {
	if t == models.TypeArchivePackage {
		return GetDatapacksDeployDir()
	}
	return GetPluginsDeployDir()
}

// GetLocationRoots maps archive payload locations to deployment roots
func GetLocationRoots() map[string]string {
	return map[string]string{
		"plugins":   GetPluginsDeployDir(),
		"datapacks": GetDatapacksDeployDir(),
	}
}
