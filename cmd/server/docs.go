// Package main OrgHub Server API
//
//	@title						OrgHub Server API
//	@version					1.0
//	@description				Organization, membership and invitation management API.
//
//	@contact.name				OrgHub Support
//	@contact.email				support@orghub.dev
//
//	@license.name				Proprietary
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Organizations
//	@tag.description			Organization lifecycle and audit log
//
//	@tag.name					Members
//	@tag.description			Membership listing, roles and removal
//
//	@tag.name					Invitations
//	@tag.description			Invitation issue, preview, acceptance and cancellation
package main
