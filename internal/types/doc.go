/*
Package types defines core data structures used throughout carcli.

# Overview

The types package provides shared type definitions for:
  - Car records as returned by the /car API
  - Drafts sent when creating or updating a record
  - List responses and their normalized form
  - Activity history entries

# Wire Format

The /car API uses snake_case field names and Mongo-style identifiers:

	{
	  "_id": "64b7f0c2e1",
	  "make": "Toyota",
	  "model": "Corolla",
	  "size": "Compact",
	  "style": "Sedan",
	  "transmission_type": "AUTOMATIC",
	  "price": 21500,
	  "release_date": 2019
	}

CarRecord accepts "id" when "_id" is absent so that servers using either
convention can be listed.

List responses carry the page count in "total", not a record count:

	{
	  "cars": [ ... ],
	  "total": 12
	}

An optional "count" field carries the exact number of matching records.

# Immutability

CarRecord values are read-only cached copies of server state. ListResult is
rebuilt on every fetch and never mutated in place.
*/
package types
