// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns the Postgres stores query.
// Column names are lowercase because the migrations create them unquoted.
package schema
