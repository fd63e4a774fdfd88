package model

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed staff.yaml
var defaultStaffYAML []byte

type StaffModel struct {
	Name     string `yaml:"name" json:"name"`
	NIP      string `yaml:"nip" json:"nip"`
	Position string `yaml:"position" json:"position"`
}

type staffFile struct {
	Staff []StaffModel `yaml:"staff"`
}

// Directory = daftar guru, urut sesuai file.
type Directory struct {
	list  []StaffModel
	byNIP map[string]StaffModel
}

// LoadDirectory membaca path (kalau diisi) atau daftar bawaan.
func LoadDirectory(path string) (*Directory, error) {
	raw := defaultStaffYAML
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("baca %s: %w", path, err)
		}
		raw = b
	}
	return ParseDirectory(raw)
}

func ParseDirectory(raw []byte) (*Directory, error) {
	var f staffFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("staff yaml: %w", err)
	}
	if len(f.Staff) == 0 {
		return nil, errors.New("staff yaml: daftar kosong")
	}

	d := &Directory{byNIP: make(map[string]StaffModel, len(f.Staff))}
	for i, s := range f.Staff {
		s.Name = strings.TrimSpace(s.Name)
		s.NIP = strings.TrimSpace(s.NIP)
		s.Position = strings.TrimSpace(s.Position)
		if s.Name == "" || s.NIP == "" {
			return nil, fmt.Errorf("staff yaml: entri ke-%d tanpa nama/NIP", i+1)
		}
		if _, dup := d.byNIP[s.NIP]; dup {
			return nil, fmt.Errorf("staff yaml: NIP %s ganda", s.NIP)
		}
		d.byNIP[s.NIP] = s
		d.list = append(d.list, s)
	}
	return d, nil
}

func (d *Directory) All() []StaffModel {
	return append([]StaffModel(nil), d.list...)
}

func (d *Directory) ByNIP(nip string) (StaffModel, bool) {
	s, ok := d.byNIP[strings.TrimSpace(nip)]
	return s, ok
}
