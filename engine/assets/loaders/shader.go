package loaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// Compiled shader objects start with this container tag.
var dxbcMagic = []byte("DXBC")

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, dxbcMagic) {
		return nil, fmt.Errorf("%s is not a compiled shader object", path)
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     data,
	}, nil
}

func (sl *ShaderLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
