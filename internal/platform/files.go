package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ytget/ytm-offline/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	AndroidCommand = "am"
)

// Command parameters
const (
	WindowsCmdFlag = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// commandRunner runs an external command; replaced in tests
var commandRunner = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// WriteFile writes data to dir/name, creating dir first
func WriteFile(dir, name string, data []byte) (string, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// HasAllowedExtension reports whether name ends in one of extensions.
// An empty list allows everything. Comparison ignores case.
func HasAllowedExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// DescribeFile builds a descriptor for the regular file at path
func DescribeFile(path string) (model.FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileDescriptor{}, fmt.Errorf("file does not exist: %w", err)
	}
	if info.IsDir() {
		return model.FileDescriptor{}, fmt.Errorf("not a regular file: %s", path)
	}

	return model.FileDescriptor{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
	}, nil
}

// DescribeFiles builds descriptors for paths. Duplicate base names are
// rejected since the name identifies a file within a batch.
func DescribeFiles(paths []string) ([]model.FileDescriptor, error) {
	files := make([]model.FileDescriptor, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, p := range paths {
		fd, err := DescribeFile(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[fd.Name]; dup {
			return nil, fmt.Errorf("duplicate file name %q: %s and %s", fd.Name, prev, p)
		}
		seen[fd.Name] = p
		files = append(files, fd)
	}
	return files, nil
}

// ScanFiles returns the regular files directly inside dir whose extension
// is allowed, sorted by name
func ScanFiles(dir string, extensions []string) ([]model.FileDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []model.FileDescriptor
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !HasAllowedExtension(entry.Name(), extensions) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, model.FileDescriptor{
			Name: entry.Name(),
			Size: info.Size(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// OpenURL opens url with the default system handler
func OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("url is empty")
	}

	switch runtime.GOOS {
	case OSDarwin: // macOS
		return commandRunner(OpenCommand, url)
	case OSWindows:
		return commandRunner(CmdCommand, WindowsCmdFlag, StartCommand, "", url)
	case OSLinux:
		return commandRunner(XDGOpenCommand, url)
	case OSAndroid:
		return commandRunner(AndroidCommand, "start", "-a", "android.intent.action.VIEW", "-d", url)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenDirectory opens dir in the system file manager
func OpenDirectory(dir string) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if err := CreateDirectoryIfNotExists(absPath); err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return commandRunner(OpenCommand, absPath)
	case OSWindows:
		return commandRunner("explorer", absPath)
	case OSLinux:
		return openDirectoryLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirectoryLinux tries xdg-open, then the common file managers
func openDirectoryLinux(dir string) error {
	if err := commandRunner(XDGOpenCommand, dir); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return commandRunner(fm, dir)
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
