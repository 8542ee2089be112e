// Package ine is a thin client for the INE Tempus 3 JSON service
// (wstempus) and the INE publication calendar.
//
// Table data is requested through the DATOS_TABLA function using the
// numeric table id found in INEbase URLs (the `t` query parameter). The
// service accepts `nult` to limit the number of trailing periods, `tip`
// to select the periodicity (M, T, A) and repeatable `tv` filters of the
// form varId:valorId.
//
// Requests are rate limited client side; the INE service is a shared
// public resource and the update pipeline walks the whole catalog.
package ine
