// Package locale holds the Polish and English strings of reports and
// recommendations in an x/text message catalog.
//
// Polish is the default. A Printer formats numbers for its language, so
// Polish reports use a decimal comma.
package locale
