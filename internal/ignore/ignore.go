// Package ignore decides which directories are descended into and which
// files are selected during a scan.
//
// Skip-folder rules are substrings of the slash-normalized path relative to
// the scan root, so "node_modules" prunes every node_modules subtree and
// "components/ui" prunes only that nested pair. Skip-file rules are exact
// file names. Exclude-path rules match whole path segments of the directory
// that contains a file. Hidden-file, .git, .gitignore and custom gitignore
// pattern rules are optional and off unless configured.
package ignore
