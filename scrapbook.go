// Package scrapbook provides heuristic scraping of semi-structured web
// pages into typed records: job postings from career sites and
// book/chapter/article hierarchies from online learning platforms. It
// favors ordered chains of cheap structural heuristics (selector rules,
// class-name patterns, text regexes) over per-site templates, degrades
// field-by-field instead of failing whole pages, and augments extracted
// articles with study metadata for spaced-repetition use.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package scrapbook
