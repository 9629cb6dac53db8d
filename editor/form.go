package editor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/glasscube/glasscube/content"
)

// Form field names shared by the editor templates and the decoders.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldShort       = "short"
	FieldThumbnail   = "thumbnail"
	FieldDemo        = "demo"
	FieldGithub      = "github"
	FieldAuthor      = "author"
	FieldTags        = "tags"
	FieldTech        = "tech"
	FieldBlockType   = "block_type"
	FieldBlockData   = "block_data"
	FieldNewType     = "new_type"
	FieldKey         = "key"
	FieldAction      = "action"
)

// BlockFileField is the multipart field carrying a new upload for block i.
func BlockFileField(i int) string {
	return "block_file_" + strconv.Itoa(i)
}

// ThumbnailFileField carries a new thumbnail upload.
const ThumbnailFileField = "thumbnail_file"

// DecodeBlocks reads the parallel block_type/block_data fields.
func DecodeBlocks(form url.Values) (Blocks, error) {
	types, data := form[FieldBlockType], form[FieldBlockData]
	if len(types) != len(data) {
		return nil, fmt.Errorf("editor: %d block types for %d block values", len(types), len(data))
	}
	blocks := make(Blocks, len(types))
	for i := range types {
		blocks[i] = content.Block{Type: content.BlockType(types[i]), Data: data[i]}
	}
	return blocks, nil
}

func decodeNewType(form url.Values) content.BlockType {
	t := content.BlockType(form.Get(FieldNewType))
	for _, allowed := range content.EditableTypes {
		if t == allowed {
			return t
		}
	}
	return content.Paragraph
}

// DecodeBlogForm rebuilds a BlogDraft from a submitted editor form.
func DecodeBlogForm(form url.Values) (BlogDraft, error) {
	blocks, err := DecodeBlocks(form)
	if err != nil {
		return BlogDraft{}, err
	}
	return BlogDraft{
		ID:          strings.TrimSpace(form.Get(FieldID)),
		Title:       form.Get(FieldTitle),
		Description: form.Get(FieldDescription),
		Thumbnail:   strings.TrimSpace(form.Get(FieldThumbnail)),
		Author:      form.Get(FieldAuthor),
		Tags:        content.ParseList(form.Get(FieldTags)),
		Content:     blocks,
		NewType:     decodeNewType(form),
	}, nil
}

// DecodeProjectForm rebuilds a ProjectDraft from a submitted editor form.
func DecodeProjectForm(form url.Values) (ProjectDraft, error) {
	blocks, err := DecodeBlocks(form)
	if err != nil {
		return ProjectDraft{}, err
	}
	return ProjectDraft{
		ID:        strings.TrimSpace(form.Get(FieldID)),
		Title:     form.Get(FieldTitle),
		Short:     form.Get(FieldShort),
		Thumbnail: strings.TrimSpace(form.Get(FieldThumbnail)),
		Demo:      strings.TrimSpace(form.Get(FieldDemo)),
		Github:    strings.TrimSpace(form.Get(FieldGithub)),
		Author:    form.Get(FieldAuthor),
		Tags:      content.ParseList(form.Get(FieldTags)),
		Tech:      content.ParseList(form.Get(FieldTech)),
		Full:      blocks,
		NewType:   decodeNewType(form),
	}, nil
}

// ActionKind is the button that submitted the editor form.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSave
	ActionAdd
	ActionRemove
	ActionMediaDelete
	ActionThumbnailDelete
)

// Action is a decoded editor button press. Index is set for block actions.
type Action struct {
	Kind  ActionKind
	Index int
}

// ParseAction decodes values such as "save", "add", "remove-2" and
// "media-delete-0". Anything unrecognized is ActionNone, which only
// re-renders the form.
func ParseAction(s string) Action {
	switch s {
	case "save":
		return Action{Kind: ActionSave}
	case "add":
		return Action{Kind: ActionAdd}
	case "thumbnail-delete":
		return Action{Kind: ActionThumbnailDelete}
	}
	for prefix, kind := range map[string]ActionKind{"remove-": ActionRemove, "media-delete-": ActionMediaDelete} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			if i, err := strconv.Atoi(rest); err == nil {
				return Action{Kind: kind, Index: i}
			}
		}
	}
	return Action{}
}
