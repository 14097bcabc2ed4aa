// Package gitpath contains consts to work with paths inside the .git
// directory.
package gitpath

// .git/ files and directories read by the core.
const (
	DotGitPath    = ".git"
	ConfigPath    = "config"
	HEADPath      = "HEAD"
	IndexPath     = "index"
	ObjectsPath   = "objects"
	RefsPath      = "refs"
	RefsTagsPath  = RefsPath + "/tags"
	RefsHeadsPath = RefsPath + "/heads"
)
