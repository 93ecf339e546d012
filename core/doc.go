// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package core implements the doujinshi.info API surface: the session
object, typed resource models, and one method per REST endpoint.

List endpoints return a [paginator.Cursor] that fetches pages lazily;
mutating endpoints refresh the session token first when it is near
expiry.
*/
package core
