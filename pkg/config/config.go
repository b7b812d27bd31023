// Package config loads and validates the YAML configuration for an export
// run. The configuration is read once at startup and threaded explicitly into
// every component that needs it; there is no ambient lookup.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hellenic-development/figma-assets/pkg/extractor"
)

// Platform selects the asset layout and conversion pipeline.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Image output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config is the fully defaulted and validated configuration of one run.
type Config struct {
	FileID   string
	Pages    extractor.PageSelector
	Platform Platform
	Icons    IconsConfig
	Images   ImagesConfig
}

// IconsConfig controls the icon export pipeline.
type IconsConfig struct {
	Path   string
	Prefix string
}

// ImagesConfig controls the image export pipeline.
type ImagesConfig struct {
	Path    string
	Format  string // "webp" or "png"
	Quality int    // 1-100, applied when re-encoding
	Prefix  string
	SkipDPI []string // Android only; DPI names excluded from export
}

var validDPIs = map[string]bool{
	"ldpi": true, "mdpi": true, "hdpi": true,
	"xhdpi": true, "xxhdpi": true, "xxxhdpi": true,
}

// Load reads the YAML file at path, applies the platform's defaults and
// validates the result. platformOverride, when non-empty, wins over the
// platform key in the file.
func Load(path string, platformOverride string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	platform := Platform(v.GetString("platform"))
	if platformOverride != "" {
		platform = Platform(platformOverride)
	}

	switch platform {
	case PlatformAndroid:
		v.SetDefault("icons.path", "res")
		v.SetDefault("icons.prefix", "ic_")
		v.SetDefault("images.path", "res")
		v.SetDefault("images.format", FormatWebP)
		v.SetDefault("images.prefix", "img_")
		// ldpi has been obsolete for years; export it only on request.
		v.SetDefault("images.skipDpi", []string{"ldpi"})
	case PlatformIOS:
		v.SetDefault("icons.path", "Assets.xcassets")
		v.SetDefault("icons.prefix", "")
		v.SetDefault("images.path", "Assets.xcassets")
		v.SetDefault("images.format", FormatPNG)
		v.SetDefault("images.prefix", "")
	case "":
		return Config{}, fmt.Errorf("platform is required (android or ios)")
	default:
		return Config{}, fmt.Errorf("invalid platform %q (must be android or ios)", platform)
	}
	v.SetDefault("images.quality", 90)

	cfg := Config{
		FileID:   v.GetString("fileId"),
		Platform: platform,
		Pages: extractor.PageSelector{
			IDs:   stringList(v, "pageId"),
			Names: stringList(v, "pageName"),
		},
		Icons: IconsConfig{
			Path:   v.GetString("icons.path"),
			Prefix: v.GetString("icons.prefix"),
		},
		Images: ImagesConfig{
			Path:    v.GetString("images.path"),
			Format:  v.GetString("images.format"),
			Quality: v.GetInt("images.quality"),
			Prefix:  v.GetString("images.prefix"),
			SkipDPI: v.GetStringSlice("images.skipDpi"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.FileID == "" {
		return fmt.Errorf("fileId is required")
	}
	if c.Images.Format != FormatWebP && c.Images.Format != FormatPNG {
		return fmt.Errorf("invalid images.format %q (must be webp or png)", c.Images.Format)
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("invalid images.quality %d (must be 1-100)", c.Images.Quality)
	}
	if c.Platform == PlatformAndroid {
		for _, dpi := range c.Images.SkipDPI {
			if !validDPIs[dpi] {
				return fmt.Errorf("invalid images.skipDpi entry %q", dpi)
			}
		}
	}
	return nil
}

// stringList reads a key that may hold either a scalar string or a list of
// strings, normalizing both forms to a slice. The pageId/pageName keys accept
// both shapes.
func stringList(v *viper.Viper, key string) []string {
	switch raw := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		if raw == "" {
			return nil
		}
		return []string{raw}
	default:
		return v.GetStringSlice(key)
	}
}
