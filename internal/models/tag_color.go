// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// TagColorPalette lists the color tokens assigned to tags, in rotation order.
// A tag keeps the color it was first assigned for its lifetime.
var TagColorPalette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ec4899", // pink
}

// TagColor is the persisted tag to color mapping. Colors are assigned
// server-side the first time a tag is seen so that tag visual identity is
// stable across requests, instead of being rederived per render.
type TagColor struct {
	Tag       string    `json:"tag"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}
