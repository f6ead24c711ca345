package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/anima-overlay/engine/assets/loaders"
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

const (
	VertexShaderFile = "vs.cso"
	PixelShaderFile  = "ps.cso"
	ShaderSourceFile = "overlay.hlsl"

	VertexEntryPoint = "vs_main"
	PixelEntryPoint  = "ps_main"
	VertexProfile    = "vs_4_0"
	PixelProfile     = "ps_4_0"
)

//go:embed shaders/overlay.hlsl
var overlayHLSL []byte

var ErrNoShaderCompiler = errors.New("no compiled shaders found and no shader compiler available")

// Compiler turns HLSL source into bytecode for one entry point.
type Compiler func(src []byte, entryPoint, target string) ([]byte, error)

// OverlayHLSL is the built-in shader source.
func OverlayHLSL() []byte {
	return overlayHLSL
}

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

/**
 * @brief Indexes the overlay's files on disk and watches them for changes.
 */
type AssetManager struct {
	assets    map[string]AssetInfo
	loaders   map[metadata.ResourceType]Loader
	compiler  Compiler
	listeners []func(AssetInfo)

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
}

func NewAssetManager(compiler Compiler) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		compiler: compiler,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeShaderSource, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeConfig, &loaders.BinaryLoader{})
	return am, nil
}

// Initialize indexes and watches assetsDir and its sub-directories. An empty
// directory leaves only the embedded shader source available.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.started = true
	go am.start()

	if assetsDir == "" {
		return nil
	}
	return am.addRecursive(assetsDir)
}

// Track indexes a single file and watches the directory holding it, so replacing
// the file is noticed as well.
func (am *AssetManager) Track(path string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	am.handleFileEvent(path)
	return am.fsnotify.Add(filepath.Dir(path))
}

// OnChange registers fn to be called after an indexed file is created or written.
func (am *AssetManager) OnChange(fn func(AssetInfo)) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.listeners = append(am.listeners, fn)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads the indexed file called name (base name) of the given type.
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	am.mutex.Lock()
	var asset AssetInfo
	exists := false
	for path, info := range am.assets {
		if info.Type == resourceType && filepath.Base(path) == name {
			asset = info
			exists = true
			// Load or reload asset from disk
			info.LastLoaded = time.Now()
			am.assets[path] = info
			break
		}
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", name)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}
	return loader.Load(asset.Path, resourceType)
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource, resourceType metadata.ResourceType) error {
	loader, ok := am.loaders[resourceType]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}
	return loader.Unload(res)
}

// unloadAll drops the data of every non-nil resource. The caller keeps its own
// references to the bytes.
func (am *AssetManager) unloadAll(resourceType metadata.ResourceType, resources ...*metadata.Resource) error {
	var errs []error
	for _, res := range resources {
		if res != nil {
			errs = append(errs, am.UnloadAsset(res, resourceType))
		}
	}
	return errors.Join(errs...)
}

/**
 * @brief Provides bytecode for both overlay shader stages. Precompiled objects in the
 * assets directory win; otherwise the HLSL source (from disk if present, else the
 * embedded one) is compiled.
 */
func (am *AssetManager) LoadShaderSource() (metadata.ShaderSource, error) {
	vs, vsErr := am.LoadAsset(VertexShaderFile, metadata.ResourceTypeShader)
	ps, psErr := am.LoadAsset(PixelShaderFile, metadata.ResourceTypeShader)
	if vsErr == nil && psErr == nil {
		core.LogDebug("using precompiled shaders %s and %s", vs.FullPath, ps.FullPath)
		shaders := metadata.ShaderSource{Vertex: vs.Data, Pixel: ps.Data}
		if err := am.unloadAll(metadata.ResourceTypeShader, vs, ps); err != nil {
			return metadata.ShaderSource{}, err
		}
		return shaders, nil
	}
	_ = am.unloadAll(metadata.ResourceTypeShader, vs, ps)

	if am.compiler == nil {
		return metadata.ShaderSource{}, ErrNoShaderCompiler
	}

	src := overlayHLSL
	if res, err := am.LoadAsset(ShaderSourceFile, metadata.ResourceTypeShaderSource); err == nil {
		core.LogDebug("compiling shader source %s", res.FullPath)
		src = res.Data
		defer am.unloadAll(metadata.ResourceTypeShaderSource, res)
	}

	vertex, err := am.compiler(src, VertexEntryPoint, VertexProfile)
	if err != nil {
		return metadata.ShaderSource{}, core.NewGraphicsResourceError("D3DCompile(vertex)", err)
	}
	pixel, err := am.compiler(src, PixelEntryPoint, PixelProfile)
	if err != nil {
		return metadata.ShaderSource{}, core.NewGraphicsResourceError("D3DCompile(pixel)", err)
	}
	return metadata.ShaderSource{Vertex: vertex, Pixel: pixel}, nil
}

// Shutdown stops watching and waits for the event loop to exit.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if !am.started {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					_ = am.watchRecursive(e.Name, false)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.notify(info)
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(info AssetInfo) {
	am.mutex.RLock()
	listeners := slices.Clone(am.listeners)
	am.mutex.RUnlock()
	for _, fn := range listeners {
		fn(info)
	}
}

// watchRecursive adds all directories under the given one to the watch list and
// indexes the files found.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	info := AssetInfo{
		Path:       filepath.Clean(path),
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.assets[info.Path] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".cso":
		return metadata.ResourceTypeShader
	case ".hlsl":
		return metadata.ResourceTypeShaderSource
	case ".toml":
		return metadata.ResourceTypeConfig
	default:
		return metadata.ResourceTypeNone
	}
}
