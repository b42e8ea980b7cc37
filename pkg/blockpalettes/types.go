package blockpalettes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of PaletteSummary.Date and PaletteDetail.Date.
const DateLayout = "2006-01-02 15:04:05"

// SortOrder is the `sort` parameter of the palette listing endpoint.
type SortOrder string

const (
	SortRecent   SortOrder = "recent"
	SortPopular  SortOrder = "popular"
	SortOldest   SortOrder = "oldest"
	SortTrending SortOrder = "trending"
)

// SortOrders lists every valid SortOrder.
var SortOrders = []SortOrder{SortRecent, SortPopular, SortOldest, SortTrending}

func ParseSortOrder(s string) (SortOrder, error) {
	for _, order := range SortOrders {
		if strings.EqualFold(s, string(order)) {
			return order, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidArgument, s)
}

func (s SortOrder) String() string {
	return string(s)
}

func (s SortOrder) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Set and Type make *SortOrder usable as a command line flag.
func (s *SortOrder) Set(value string) error {
	return s.UnmarshalText([]byte(value))
}

func (s *SortOrder) Type() string {
	return "sort"
}

// PaletteSummary is a palette as returned by the listing, search and similar
// palette endpoints.
type PaletteSummary struct {
	ID       uint64
	UserID   uint64
	Date     string
	Likes    uint32
	Blocks   [6]string
	Hidden   bool
	Featured bool
	// Hash is nil when the upstream omitted it.
	Hash    *string
	TimeAgo string
}

// ContainsAll reports whether every name in `blocks` is one of the palette's
// six blocks. Matching is exact and case-sensitive.
func (p PaletteSummary) ContainsAll(blocks []string) bool {
	return containsAll(p.Blocks, blocks)
}

// BlockSet returns the palette's blocks as a set, duplicate slots collapse.
func (p PaletteSummary) BlockSet() map[string]struct{} {
	return blockSet(p.Blocks)
}

// ParseDate parses Date according to DateLayout. The result is in UTC since
// the upstream does not say which zone it uses.
func (p PaletteSummary) ParseDate() (time.Time, error) {
	return parseDate(p.Date)
}

func (p PaletteSummary) MarshalJSON() ([]byte, error) {
	wire := newPaletteWire(p.ID, p.UserID, p.Date, p.Likes, p.Blocks, p.Hidden, p.Featured, p.TimeAgo)
	wire.Hash = p.Hash
	return json.Marshal(wire)
}

func (p *PaletteSummary) UnmarshalJSON(data []byte) error {
	var wire paletteWire
	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}
	err = wire.check()
	if err != nil {
		return err
	}
	*p = PaletteSummary{
		ID:       *wire.ID,
		UserID:   *wire.UserID,
		Date:     *wire.Date,
		Likes:    *wire.Likes,
		Blocks:   wire.blocks(),
		Hidden:   bool(*wire.Hidden),
		Featured: bool(*wire.Featured),
		Hash:     wire.Hash,
		TimeAgo:  *wire.TimeAgo,
	}
	return nil
}

// PaletteDetail is a single palette along with its creator, as returned by
// the single palette endpoint.
type PaletteDetail struct {
	ID       uint64
	UserID   uint64
	Date     string
	Likes    uint32
	Blocks   [6]string
	Hidden   bool
	Featured bool
	Hash     string
	Username string
	TimeAgo  string
}

func (p PaletteDetail) ContainsAll(blocks []string) bool {
	return containsAll(p.Blocks, blocks)
}

func (p PaletteDetail) BlockSet() map[string]struct{} {
	return blockSet(p.Blocks)
}

func (p PaletteDetail) ParseDate() (time.Time, error) {
	return parseDate(p.Date)
}

func (p PaletteDetail) MarshalJSON() ([]byte, error) {
	wire := newPaletteWire(p.ID, p.UserID, p.Date, p.Likes, p.Blocks, p.Hidden, p.Featured, p.TimeAgo)
	hash := p.Hash
	wire.Hash = &hash
	username := p.Username
	wire.Username = &username
	return json.Marshal(wire)
}

func (p *PaletteDetail) UnmarshalJSON(data []byte) error {
	var wire paletteWire
	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}
	err = wire.check()
	if err != nil {
		return err
	}
	err = checkFields(
		wireField{"hash", wire.Hash != nil},
		wireField{"username", wire.Username != nil},
	)
	if err != nil {
		return err
	}
	*p = PaletteDetail{
		ID:       *wire.ID,
		UserID:   *wire.UserID,
		Date:     *wire.Date,
		Likes:    *wire.Likes,
		Blocks:   wire.blocks(),
		Hidden:   bool(*wire.Hidden),
		Featured: bool(*wire.Featured),
		Hash:     *wire.Hash,
		Username: *wire.Username,
		TimeAgo:  *wire.TimeAgo,
	}
	return nil
}

// PopularBlock is a block together with the number of palettes using it.
type PopularBlock struct {
	Name  string `json:"block"`
	Count uint32 `json:"count"`
}

func (b *PopularBlock) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name  *string `json:"block"`
		Count *uint32 `json:"count"`
	}
	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}
	err = checkFields(
		wireField{"block", wire.Name != nil},
		wireField{"count", wire.Count != nil},
	)
	if err != nil {
		return err
	}
	*b = PopularBlock{Name: *wire.Name, Count: *wire.Count}
	return nil
}

// PaletteListResult is one page of the palette listing endpoint.
type PaletteListResult struct {
	Success      bool   `json:"success"`
	TotalResults uint32 `json:"total_results"`
	TotalPages   uint32 `json:"total_pages"`
	// Palettes is nil when the upstream omitted it or sent null.
	Palettes []PaletteSummary `json:"palettes,omitempty"`
}

// UnmarshalJSON requires success and both totals, palettes may be absent.
func (r *PaletteListResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Success      *bool            `json:"success"`
		TotalResults *uint32          `json:"total_results"`
		TotalPages   *uint32          `json:"total_pages"`
		Palettes     []PaletteSummary `json:"palettes"`
	}
	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}
	err = checkFields(
		wireField{"success", wire.Success != nil},
		wireField{"total_results", wire.TotalResults != nil},
		wireField{"total_pages", wire.TotalPages != nil},
	)
	if err != nil {
		return err
	}
	*r = PaletteListResult{
		Success:      *wire.Success,
		TotalResults: *wire.TotalResults,
		TotalPages:   *wire.TotalPages,
		Palettes:     wire.Palettes,
	}
	return nil
}

// PalettePageExtract is what ScrapePalettePage finds on a palette's page.
type PalettePageExtract struct {
	Blocks            []string `json:"blocks"`
	SimilarPaletteIDs []uint64 `json:"similar_palette_ids"`
}

var blockFields = [6]string{"blockOne", "blockTwo", "blockThree", "blockFour", "blockFive", "blockSix"}

type paletteWire struct {
	ID         *uint64   `json:"id"`
	UserID     *uint64   `json:"user_id"`
	Date       *string   `json:"date"`
	Likes      *uint32   `json:"likes"`
	BlockOne   *string   `json:"blockOne"`
	BlockTwo   *string   `json:"blockTwo"`
	BlockThree *string   `json:"blockThree"`
	BlockFour  *string   `json:"blockFour"`
	BlockFive  *string   `json:"blockFive"`
	BlockSix   *string   `json:"blockSix"`
	Hidden     *wireFlag `json:"hidden"`
	Featured   *wireFlag `json:"featured"`
	Hash       *string   `json:"hash,omitempty"`
	Username   *string   `json:"username,omitempty"`
	TimeAgo    *string   `json:"time_ago"`
}

func newPaletteWire(
	id, userId uint64,
	date string,
	likes uint32,
	blocks [6]string,
	hidden, featured bool,
	timeAgo string,
) paletteWire {
	hiddenFlag := wireFlag(hidden)
	featuredFlag := wireFlag(featured)
	return paletteWire{
		ID:         &id,
		UserID:     &userId,
		Date:       &date,
		Likes:      &likes,
		BlockOne:   &blocks[0],
		BlockTwo:   &blocks[1],
		BlockThree: &blocks[2],
		BlockFour:  &blocks[3],
		BlockFive:  &blocks[4],
		BlockSix:   &blocks[5],
		Hidden:     &hiddenFlag,
		Featured:   &featuredFlag,
		TimeAgo:    &timeAgo,
	}
}

// check fails on the first field that every palette record carries but this
// one does not. Hash and username are checked by PaletteDetail.
func (w paletteWire) check() error {
	return checkFields(
		wireField{"id", w.ID != nil},
		wireField{"user_id", w.UserID != nil},
		wireField{"date", w.Date != nil},
		wireField{"likes", w.Likes != nil},
		wireField{blockFields[0], w.BlockOne != nil},
		wireField{blockFields[1], w.BlockTwo != nil},
		wireField{blockFields[2], w.BlockThree != nil},
		wireField{blockFields[3], w.BlockFour != nil},
		wireField{blockFields[4], w.BlockFive != nil},
		wireField{blockFields[5], w.BlockSix != nil},
		wireField{"hidden", w.Hidden != nil},
		wireField{"featured", w.Featured != nil},
		wireField{"time_ago", w.TimeAgo != nil},
	)
}

// blocks returns the six slots in order, check must have passed.
func (w paletteWire) blocks() [6]string {
	return [6]string{*w.BlockOne, *w.BlockTwo, *w.BlockThree, *w.BlockFour, *w.BlockFive, *w.BlockSix}
}

// wireField is a field of an upstream body and whether it was present. A
// JSON null counts as absent.
type wireField struct {
	name    string
	present bool
}

func checkFields(fields ...wireField) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("missing field %q", f.name)
		}
	}
	return nil
}

// wireFlag is a boolean sent by the upstream as 0 or 1.
type wireFlag bool

func (f wireFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *wireFlag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "1", "true":
		*f = true
	case "0", "false", "null", "":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

func blockSet(slots [6]string) map[string]struct{} {
	set := make(map[string]struct{}, len(slots))
	for _, block := range slots {
		set[block] = struct{}{}
	}
	return set
}

func containsAll(slots [6]string, blocks []string) bool {
	set := blockSet(slots)
	for _, block := range blocks {
		if _, ok := set[block]; !ok {
			return false
		}
	}
	return true
}

func parseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, date)
	}
	return parsed, nil
}
