/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within contexts. The TUI asks the registry which action
a key press means in its current context, so every binding can be changed
from ~/.carcli/keybinds.json without touching the key handlers.

# Contexts

  - global: available everywhere (ctrl+c)
  - normal: the car grid
  - search: the search input; unbound keys edit the text
  - form: the create/edit form
  - confirm: the delete confirmation
  - history, help: read-only modals

A context binding shadows the global binding for the same key.

# Configuration File Format

Each section maps an action to a comma-separated key list. A configured
action replaces all of its default keys in that section; write ",," for a
literal comma key.

	{
	  "version": "1.0",
	  "normal": {
	    "next_page": "right,l,ctrl+n",
	    "delete_car": "D"
	  },
	  "confirm": {
	    "confirm": "y,enter"
	  }
	}

Run `carcli keybinds init` to write the defaults and `carcli keybinds check`
to validate a file.

# Validation

The validator reports:
  - unknown action names and malformed keys (errors)
  - one key given to two actions in a section (errors)
  - rebinding of ctrl+c (warning)
  - context bindings that shadow global ones (warning)

# Thread Safety

Registries are built once at startup and only read afterwards.
*/
package keybinds
