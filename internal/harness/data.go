package harness

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// ReadElements 读取以空白分隔的整数，最多读取 limit 个，多余的内容被忽略
func ReadElements(r io.Reader, limit int) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	out := []int{}
	for len(out) < limit && sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", len(out))
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read elements")
	}
	return out, nil
}

// loadElements 返回场景使用的元素：优先使用内联的 elements，否则读取 data_file
func loadElements(dataDir string, sc *ScenarioConfig) ([]int, error) {
	if sc.DataFile == "" {
		return sc.Elements, nil
	}
	path := sc.DataFile
	if !filepath.IsAbs(path) && dataDir != "" {
		path = filepath.Join(dataDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer f.Close()
	return ReadElements(f, MaxElements)
}
