package domain

import "strings"

// FunctionDirName is the archive directory benchmark sources are relocated into.
const FunctionDirName = "function"

// BuildScriptName is the provider build script kept at the archive root.
const BuildScriptName = "build.sh"

// PackageLayout lists the files a language runtime expects at the archive root.
type PackageLayout struct {
	Language Language
	// Handler is the entry point loaded by the runtime.
	Handler string
	// Manifest is the generic dependency manifest.
	Manifest string
	// VersionManifestPrefix names per-version manifests as <prefix><version>.
	// It is empty for languages without them.
	VersionManifestPrefix string
}

var layouts = map[Language]PackageLayout{
	LanguagePython: {
		Language:              LanguagePython,
		Handler:               "handler.py",
		Manifest:              "requirements.txt",
		VersionManifestPrefix: "requirements.txt.",
	},
	LanguageNodeJS: {
		Language: LanguageNodeJS,
		Handler:  "handler.js",
		Manifest: "package.json",
	},
}

// LayoutFor returns the package layout of lang.
func LayoutFor(lang Language) (PackageLayout, bool) {
	l, ok := layouts[lang]
	return l, ok
}

// VersionManifest returns the manifest fragment selected for version, or "".
func (l PackageLayout) VersionManifest(version string) string {
	if l.VersionManifestPrefix == "" || version == "" {
		return ""
	}
	return l.VersionManifestPrefix + version
}

// IsVersionManifest reports whether name is a per-version manifest of any version.
func (l PackageLayout) IsVersionManifest(name string) bool {
	return l.VersionManifestPrefix != "" && strings.HasPrefix(name, l.VersionManifestPrefix)
}

// KeepsAtRoot reports whether name stays at the archive root.
func (l PackageLayout) KeepsAtRoot(name string) bool {
	return name == l.Handler || name == l.Manifest
}
