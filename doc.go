// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xqpath evaluates a restricted XPath dialect against XML documents.

A query is rooted at a named document, walks child, parent and
descendant-or-self steps, and may filter steps with existence, value-equality
and identity-equality predicates. Evaluation produces an ordered node-set
with duplicates collapsed at the absolute-path result and at every '/' and
'//' step.

See examples for usage.
*/
package xqpath
