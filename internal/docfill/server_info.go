package docfill

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docfill/mcp-docfill/internal/descriptions"
)

// TemplateFileInfo describes one template file in the configured
// directory.
type TemplateFileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ToolInfo describes one MCP tool for the server info listing.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServerInfoResult is the doc_server_info payload.
type ServerInfoResult struct {
	ServerName        string             `json:"server_name"`
	Version           string             `json:"version"`
	TemplateDirectory string             `json:"template_directory"`
	OutputDirectory   string             `json:"output_directory"`
	MaxFileSize       int64              `json:"max_file_size"`
	TemplateFiles     []TemplateFileInfo `json:"template_files"`
	AvailableTools    []ToolInfo         `json:"available_tools"`
	UsageGuidance     string             `json:"usage_guidance"`
}

// directoryCache keeps the last template-directory scan for a short
// TTL so repeated info calls do not re-walk the directory.
type directoryCache struct {
	mu       sync.RWMutex
	files    []TemplateFileInfo
	scanned  time.Time
	ttl      time.Duration
	haveScan bool
}

const (
	scanCacheTTL  = 30 * time.Second
	scanMaxDepth  = 3
	scanFileLimit = 100
)

var templateExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ServerInfo reports server configuration, the template files
// currently available, and the tool catalog.
func (s *Service) ServerInfo(serverName, version string, maxFileSize int64) (*ServerInfoResult, error) {
	files := s.dirCache.get(func() []TemplateFileInfo {
		return scanTemplateDirectory(s.paths.ConfiguredDirectory())
	})

	var tools []ToolInfo
	names := descriptions.GetAllToolNames()
	sort.Strings(names)
	for _, name := range names {
		tools = append(tools, ToolInfo{
			Name:        name,
			Description: descriptions.GetToolDescription(name),
		})
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		TemplateDirectory: s.paths.ConfiguredDirectory(),
		OutputDirectory:   s.outputDir,
		MaxFileSize:       maxFileSize,
		TemplateFiles:     files,
		AvailableTools:    tools,
		UsageGuidance: "Start with doc_load_template to detect the placeholders in a template, " +
			"answer each prompt with doc_answer, confirm the summary with \"yes\", " +
			"then doc_preview and doc_download the completed document.",
	}, nil
}

// get returns the cached listing when fresh, rescanning otherwise.
func (c *directoryCache) get(scan func() []TemplateFileInfo) []TemplateFileInfo {
	c.mu.RLock()
	if c.haveScan && time.Since(c.scanned) < c.ttl {
		files := c.files
		c.mu.RUnlock()
		return files
	}
	c.mu.RUnlock()

	files := scan()

	c.mu.Lock()
	c.files = files
	c.scanned = time.Now()
	c.haveScan = true
	c.mu.Unlock()
	return files
}

// scanTemplateDirectory walks the template directory for supported
// files, bounded in depth and count, skipping hidden entries.
func scanTemplateDirectory(dir string) []TemplateFileInfo {
	var files []TemplateFileInfo

	root := filepath.Clean(dir)
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && rel != "." && strings.Count(rel, string(filepath.Separator)) >= scanMaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !templateExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		files = append(files, TemplateFileInfo{
			Name: d.Name(),
			Path: path,
			Size: info.Size(),
		})
		if len(files) >= scanFileLimit {
			return filepath.SkipAll
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}
