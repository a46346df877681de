// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the light and dark looks of deepthink.

One palette per mode drives every front end: the web page gets it as CSS,
the terminal front ends as Lip Gloss styles.

# Modes (mode.go)

	ModeLight - mint on alice blue, the default
	ModeDark  - pale text on deep indigo

ParseMode accepts "light", "dark" and "auto"; auto asks termenv whether
the terminal background is dark.

# Palettes (colors.go)

	Background, Text, Header      - page surface and headings
	UserBubble, BotBubble, Border - transcript bubbles
	Button, ButtonHover, Focus    - controls

# Web (css.go)

	css := styles.CSS(styles.ModeDark)

# Terminal (theme.go)

	theme := styles.NewTheme(styles.ModeDark)
	fmt.Println(theme.UserBubble.Render("Hello"))

# Animation (animations.go)

ThinkingSpinner and ThinkingMessage are shown while a reply is pending.
*/
package styles
