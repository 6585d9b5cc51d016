// Package bookingapi is a thin client for the Restful Booker REST API.
//
// Client is stateless and issues exactly one HTTP request per call. Token
// handling for one logical session lives in Session.
package bookingapi
