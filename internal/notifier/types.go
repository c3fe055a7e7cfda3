package notifier

import (
	"fmt"
	"strings"
)

// Type is a packed notifier bitfield.
type Type uint32

// Field masks.
const (
	MaskCategory Type = 0xFF000000
	MaskData     Type = 0x00FF0000
	MaskSubtype  Type = 0x0000FF00
	MaskAction   Type = 0x000000FF
)

// Categories.
const (
	NCWM        Type = 0x01000000
	NCWindow    Type = 0x02000000
	NCScreen    Type = 0x03000000
	NCScene     Type = 0x04000000
	NCObject    Type = 0x05000000
	NCMaterial  Type = 0x06000000
	NCTexture   Type = 0x07000000
	NCImage     Type = 0x0A000000
	NCText      Type = 0x0C000000
	NCAnimation Type = 0x0E000000
	NCSpace     Type = 0x0F000000
	NCGeom      Type = 0x10000000
	NCNode      Type = 0x11000000
	NCID        Type = 0x12000000
	NCAsset     Type = 0x1A000000
)

// NCWM data.
const (
	NDFileRead    Type = 0x01 << 16
	NDFileSave    Type = 0x02 << 16
	NDDataChanged Type = 0x03 << 16
	NDHistory     Type = 0x04 << 16
	NDJob         Type = 0x05 << 16
	NDUndo        Type = 0x06 << 16
	NDConfig      Type = 0x09 << 16
)

// NCScreen data.
const (
	NDLayoutBrowse    Type = 0x01 << 16
	NDLayoutDelete    Type = 0x02 << 16
	NDAnimPlay        Type = 0x04 << 16
	NDLayoutSet       Type = 0x06 << 16
	NDWorkspaceSet    Type = 0x08 << 16
	NDWorkspaceDelete Type = 0x09 << 16

	// NDScreenBrowse and NDScreenDelete are the screen-level names of the
	// layout browse/delete notes.
	NDScreenBrowse = NDLayoutBrowse
	NDScreenDelete = NDLayoutDelete
)

// NCSpace data.
const (
	NDSpaceConsole    Type = 0x01 << 16
	NDSpaceInfoReport Type = 0x02 << 16
	NDSpaceInfo       Type = 0x03 << 16
	NDSpaceFile       Type = 0x05 << 16
)

// NCScene data.
const (
	NDSceneBrowse Type = 0x01 << 16
	NDFrame       Type = 0x03 << 16
)

// Actions.
const (
	NAEdited      Type = 0x01
	NAEvaluated   Type = 0x02
	NAAdded       Type = 0x03
	NARemoved     Type = 0x04
	NARename      Type = 0x05
	NASelected    Type = 0x06
	NAActivated   Type = 0x07
	NAPainting    Type = 0x08
	NAJobFinished Type = 0x09
)

// Category returns the category byte of t.
func (t Type) Category() Type { return t & MaskCategory }

// Data returns the data byte of t.
func (t Type) Data() Type { return t & MaskData }

// Subtype returns the subtype byte of t.
func (t Type) Subtype() Type { return t & MaskSubtype }

// Action returns the action byte of t.
func (t Type) Action() Type { return t & MaskAction }

var categoryNames = map[Type]string{
	NCWM:        "WM",
	NCWindow:    "WINDOW",
	NCScreen:    "SCREEN",
	NCScene:     "SCENE",
	NCObject:    "OBJECT",
	NCMaterial:  "MATERIAL",
	NCTexture:   "TEXTURE",
	NCImage:     "IMAGE",
	NCText:      "TEXT",
	NCAnimation: "ANIMATION",
	NCSpace:     "SPACE",
	NCGeom:      "GEOM",
	NCNode:      "NODE",
	NCID:        "ID",
	NCAsset:     "ASSET",
}

// String renders the four fields, e.g. "WM|0x04|0x00|0x00".
func (t Type) String() string {
	cat, ok := categoryNames[t.Category()]
	if !ok {
		cat = fmt.Sprintf("0x%02x", uint32(t.Category())>>24)
	}
	return fmt.Sprintf("%s|0x%02x|0x%02x|0x%02x",
		cat, uint32(t.Data())>>16, uint32(t.Subtype())>>8, uint32(t.Action()))
}

// ParseCategory resolves a category name such as "SCENE".
func ParseCategory(name string) (Type, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for t, n := range categoryNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
