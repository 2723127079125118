package pipeline

import (
    "encoding/gob"
    "os"
    "path/filepath"
)

// Save gob-encodes p to path, creating parent directories.
func Save(path string, p *Prepared) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return err
    }
    f, err := os.Create(path)
    if err != nil {
        return err
    }
    if err := gob.NewEncoder(f).Encode(p); err != nil {
        f.Close()
        return err
    }
    return f.Close()
}

func Load(path string) (*Prepared, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()
    var p Prepared
    if err := gob.NewDecoder(f).Decode(&p); err != nil {
        return nil, err
    }
    return &p, nil
}
