package level

import (
	_ "embed"
	"errors"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/cpu"
	"github.com/ezrec/ucircuit/internal"
)

//go:embed levels.hcl
var levelsHcl []byte

// hclCatalog is the top level structure of a catalog file.
type hclCatalog struct {
	Levels []*hclLevel `hcl:"level,block"`
}

type hclLevel struct {
	Id          string         `hcl:"id,label"`
	Title       string         `hcl:"title"`
	Description string         `hcl:"description"`
	Hints       []string       `hcl:"hints,optional"`
	MaxAttempts int            `hcl:"max_attempts"`
	Locked      bool           `hcl:"locked,optional"`
	Requires    []string       `hcl:"requires,optional"`
	Powered     bool           `hcl:"powered,optional"`
	Links       []*hclLink     `hcl:"link,block"`
	Allow       []string       `hcl:"allow,optional"`
	Require     []string       `hcl:"require,optional"`
	Defines     map[string]int `hcl:"defines,optional"`
}

type hclLink struct {
	From   string `hcl:"from"`
	To     string `hcl:"to"`
	Reason string `hcl:"reason"`
}

// Catalog is an ordered set of levels.
type Catalog struct {
	levels []*Level
}

// Load decodes a catalog from HCL source. The filename is only used in
// diagnostics.
func Load(filename string, src []byte) (catalog *Catalog, err error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		err = errors.Join(ErrCatalogSyntax, diags)
		return
	}

	var parsed hclCatalog
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		err = errors.Join(ErrCatalogSyntax, diags)
		return
	}

	catalog = &Catalog{}
	for _, hl := range parsed.Levels {
		var lvl *Level
		lvl, err = hl.level()
		if err != nil {
			err = ErrLevel{Id: hl.Id, Err: err}
			catalog = nil
			return
		}
		if catalog.Level(lvl.Id) != nil {
			err = ErrLevel{Id: hl.Id, Err: ErrLevelDuplicate}
			catalog = nil
			return
		}
		catalog.levels = append(catalog.levels, lvl)
	}

	return
}

// LoadFile decodes a catalog from a file.
func LoadFile(path string) (catalog *Catalog, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return Load(path, src)
}

// Default returns the built-in catalog.
var Default = sync.OnceValue(func() *Catalog {
	catalog, err := Load("levels.hcl", levelsHcl)
	if err != nil {
		panic(err)
	}
	return catalog
})

// Level returns the level with the id, or nil.
func (catalog *Catalog) Level(id int) *Level {
	for _, lvl := range catalog.levels {
		if lvl.Id == id {
			return lvl
		}
	}
	return nil
}

// All returns the levels in declaration order.
func (catalog *Catalog) All() []*Level {
	return slices.Clone(catalog.levels)
}

func (hl *hclLevel) level() (lvl *Level, err error) {
	id, err := strconv.Atoi(hl.Id)
	if err != nil || id <= 0 {
		err = ErrLevelId
		return
	}

	if hl.MaxAttempts <= 0 {
		err = ErrMaxAttempts
		return
	}

	lvl = &Level{
		Id:          id,
		Title:       hl.Title,
		Description: hl.Description,
		Hints:       hl.Hints,
		MaxAttempts: hl.MaxAttempts,
		Locked:      hl.Locked,
		Powered:     hl.Powered,
		Allow:       hl.Allow,
		Require:     hl.Require,
		Define:      hl.Defines,
	}

	for _, tag := range hl.Requires {
		var t circuit.Type
		t, err = circuit.ParseType(tag)
		if err != nil {
			return
		}
		lvl.Requires = append(lvl.Requires, t)
	}

	for _, hlink := range hl.Links {
		link := Link{Reason: hlink.Reason}
		link.From, err = ParseTerminal(hlink.From)
		if err != nil {
			return
		}
		link.To, err = ParseTerminal(hlink.To)
		if err != nil {
			return
		}
		lvl.Links = append(lvl.Links, link)
	}

	for mnemonic := range internal.IterSeqConcat(slices.Values(hl.Allow), slices.Values(hl.Require)) {
		mn, ok := cpu.ParseMnemonic(mnemonic)
		if !ok || mn.String() != mnemonic {
			err = errors.Join(ErrMnemonicUnknown, errors.New(mnemonic))
			return
		}
	}

	for _, mnemonic := range hl.Require {
		if !slices.Contains(hl.Allow, mnemonic) {
			err = errors.Join(ErrRequireNotAllowed, errors.New(mnemonic))
			return
		}
	}

	return
}
