// Package confloader loads configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults already present in the target struct
//  2. A YAML file
//  3. Environment variables (HUBLINK_ prefix)
//  4. Overrides passed with WithOverrides, usually command-line flags
//
// Environment names are matched against the koanf tags of the target, so
// HUBLINK_LINK_BASE_URL sets link.base_url rather than link.base.url.
//
// Watcher reports changes to watched files through fsnotify.
package confloader
