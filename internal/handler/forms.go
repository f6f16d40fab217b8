// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/ngl-guild/internal/content"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/service"
)

// maxFormBody bounds urlencoded form bodies.
const maxFormBody = 1 << 20

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	return r.ParseForm()
}

func formInt(form url.Values, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func formBool(form url.Values, key string) bool {
	switch form.Get(key) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// playerFromForm reads the registration form. Validation happens in the
// player service.
func playerFromForm(form url.Values) model.Player {
	return model.Player{
		Nickname:         form.Get("nickname"),
		PlayerID:         form.Get("player_id"),
		Platform:         form.Get("platform"),
		PrimaryWeapon:    form.Get("primary_weapon"),
		SecondaryWeapon:  form.Get("secondary_weapon"),
		BuildType:        form.Get("build_type"),
		Level:            formInt(form, "level"),
		CombatPower:      formInt(form, "combat_power"),
		Professions:      form["professions"],
		GuildRole:        form.Get("guild_role"),
		AvailabilityDays: form["availability_days"],
		AvailabilityTime: form.Get("availability_time"),
		ContentInterest:  form["content_interest"],
		HasMicrophone:    formBool(form, "has_microphone"),
		DiscordRequired:  formBool(form, "discord_required"),
		Age:              formInt(form, "age"),
		DiscordID:        form.Get("discord_id"),
		GamePlatformID:   form.Get("game_platform_id"),
		StreamingLink:    form.Get("streaming_link"),
		CharacterImage:   form.Get("character_image"),
		BuildImage:       form.Get("build_image"),
		GuildMotivation:  form.Get("guild_motivation"),
		Bio:              form.Get("bio"),
		GamerPersonality: form["gamer_personality"],
	}
}

// Form field names of the block editor. Block i uses "block_<field>_<i>".
const (
	fieldDocument = "content_json"
	fieldAction   = "action"
)

func blockField(name string, i int) string {
	return "block_" + name + "_" + strconv.Itoa(i)
}

// documentFromForm rebuilds the editor document: the hidden encoded
// document gives the block kinds and order, and the per-block inputs give
// the current field values.
func documentFromForm(form url.Values) (content.Document, error) {
	doc, err := content.Decode([]byte(form.Get(fieldDocument)))
	if err != nil {
		return nil, err
	}
	for i, b := range doc {
		var p content.Patch
		if v, ok := formValue(form, blockField("text", i)); ok {
			p.Text = &v
		}
		switch b.Kind() {
		case content.KindText:
			if v, ok := formValue(form, blockField("font_size", i)); ok {
				p.FontSize = &v
			}
			if v, ok := formValue(form, blockField("color", i)); ok {
				p.Color = &v
			}
		case content.KindHeading:
			if v, ok := formValue(form, blockField("color", i)); ok {
				p.Color = &v
			}
		case content.KindImage:
			if v, ok := formValue(form, blockField("url", i)); ok {
				v = strings.TrimSpace(v)
				p.ImageURL = &v
			}
		}
		if p.IsZero() {
			continue
		}
		if doc, err = content.UpdateBlock(doc, i, p); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func formValue(form url.Values, key string) (string, bool) {
	v, ok := form[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// postInputFromForm reads the post form fields.
func postInputFromForm(form url.Values, doc content.Document) service.PostInput {
	return service.PostInput{
		Title:      form.Get("title"),
		Content:    form.Get("content"),
		Category:   form.Get("category"),
		Body:       doc,
		ImageURL:   form.Get("image_url"),
		YoutubeURL: form.Get("youtube_url"),
		Published:  formBool(form, "published"),
	}
}

// parseEditorAction turns the submit button value into an editor operation.
// Values are "save", "add:<kind>", "remove:<i>", "up:<i>" and "down:<i>".
// save is reported with a nil op.
func parseEditorAction(action string) (*content.Op, error) {
	if action == "" || action == "save" {
		return nil, nil
	}
	name, arg, ok := strings.Cut(action, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", content.ErrUnknownOp, action)
	}
	if name == string(content.OpAdd) {
		kind, err := content.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		return &content.Op{Name: content.OpAdd, Kind: kind}, nil
	}

	idx, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: index %q", content.ErrIndexOutOfRange, arg)
	}
	switch name {
	case string(content.OpRemove):
		return &content.Op{Name: content.OpRemove, Index: idx}, nil
	case string(content.Up), string(content.Down):
		return &content.Op{Name: content.OpMove, Index: idx, Direction: content.Direction(name)}, nil
	}
	return nil, fmt.Errorf("%w: %q", content.ErrUnknownOp, action)
}

// editorBlock is the template view of one block in the editor.
type editorBlock struct {
	Index    int
	Kind     content.Kind
	Label    string
	Text     string
	FontSize string
	Color    string
	URL      string
	Active   bool
	First    bool
	Last     bool
}

func editorBlocks(doc content.Document, active int) []editorBlock {
	out := make([]editorBlock, len(doc))
	for i, b := range doc {
		eb := editorBlock{
			Index:  i,
			Kind:   b.Kind(),
			Label:  b.Kind().Label(),
			Text:   b.BlockText(),
			Active: i == active,
			First:  i == 0,
			Last:   i == len(doc)-1,
		}
		switch v := b.(type) {
		case content.TextBlock:
			eb.FontSize, eb.Color = v.FontSize, v.Color
		case content.HeadingBlock:
			eb.Color = v.Color
		case content.ImageBlock:
			eb.URL = v.URL
		}
		out[i] = eb
	}
	return out
}
