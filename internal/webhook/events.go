// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook posts guild events to an outgoing webhook, such as a
// Discord channel, from a small pool of background workers.
package webhook

import (
	"fmt"
	"time"
)

// Event types.
const (
	EventPlayerRegistered = "player.registered"
	EventPostPublished    = "post.published"
)

// Event is a guild event queued for delivery.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event stamped with the current UTC time.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PlayerEventData describes a new registration.
type PlayerEventData struct {
	ID            string `json:"id"`
	Nickname      string `json:"nickname"`
	PrimaryWeapon string `json:"primary_weapon,omitempty"`
	BuildType     string `json:"build_type,omitempty"`
}

// PostEventData describes a post that became public.
type PostEventData struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// payload is the JSON body sent to the endpoint. Content makes it
// readable by Discord; the event keeps it usable by other receivers.
type payload struct {
	Content string `json:"content"`
	Event   *Event `json:"event"`
}

// Message renders the human readable line for e.
func (e *Event) Message() string {
	switch d := e.Data.(type) {
	case PlayerEventData:
		if d.PrimaryWeapon != "" {
			return fmt.Sprintf("Novo jogador registrado: **%s** (%s)", d.Nickname, d.PrimaryWeapon)
		}
		return fmt.Sprintf("Novo jogador registrado: **%s**", d.Nickname)
	case PostEventData:
		return fmt.Sprintf("Nova publicação no blog [%s]: **%s**", d.Category, d.Title)
	}
	return e.Type
}
