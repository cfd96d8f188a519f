// Package auth implements the two sign-in flows. Both end in the same
// persisted session shape, so the rest of the app never cares which
// one produced the token.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"docme/internal/api"
	"docme/internal/app"
	"docme/internal/session"
)

func oauthConfig(cfg app.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  "http://" + cfg.CallbackAddr,
		Scopes:       []string{"openid", "email", "profile", drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLogin signs in directly against Google: consent in the
// browser, authorization code on the local callback, code exchanged
// for a token whose id_token becomes the session credential.
func GoogleLogin(ctx context.Context, cfg app.Config) (*session.Session, error) {
	conf := oauthConfig(cfg)
	if conf.ClientID == "" {
		return nil, errors.New("google_client_id is not configured; set it in the config file or sign in through the backend instead")
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random state: %w", err)
	}
	state := fmt.Sprintf("%x", stateBytes)

	values, err := waitForQuery(ctx, cfg.CallbackAddr, conf.AuthCodeURL(state, oauth2.AccessTypeOffline), func(v url.Values) error {
		if errMsg := v.Get("error"); errMsg != "" {
			return fmt.Errorf("authentication failed: %s", errMsg)
		}
		if v.Get("state") != state {
			return errors.New("invalid state parameter received")
		}
		if v.Get("code") == "" {
			return errors.New("callback carried no authorization code")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, values.Get("code"))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code for token: %w", err)
	}
	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return nil, errors.New("provider response carried no id_token")
	}
	return session.FromIDToken(idToken)
}

// BackendLogin runs the server-initiated flow: the browser is sent to
// the backend's /auth/google entry point, the backend redirects to our
// local callback with token, userId and email query parameters, and
// those become the session verbatim.
func BackendLogin(ctx context.Context, client *api.Client, callbackAddr string) (*session.Session, error) {
	loginURL := client.LoginURL() + "?redirect_uri=" + url.QueryEscape("http://"+callbackAddr)

	values, err := waitForQuery(ctx, callbackAddr, loginURL, func(v url.Values) error {
		if errMsg := v.Get("error"); errMsg != "" {
			return fmt.Errorf("authentication failed: %s", errMsg)
		}
		if v.Get("token") == "" || v.Get("userId") == "" || v.Get("email") == "" {
			return errors.New("callback missing token parameters")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session.Session{
		Token:  values.Get("token"),
		UserID: values.Get("userId"),
		Email:  values.Get("email"),
	}, nil
}
