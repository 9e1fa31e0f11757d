// Package handler contains the HTTP handlers for the users and articles API.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse the incoming HTTP request (path id, query params, JSON body)
//  2. Call the service layer
//  3. Write the HTTP response (status code, JSON body)
//
// Handlers hold no business rules. Validation lives in the service layer;
// handlers only turn its apperror kinds into status codes (see writeError).
//
// Get, create, update and delete are written once, generically, in
// resource.go. UserHandler and ArticleHandler embed that and add the list
// endpoints, which differ per resource.
package handler
