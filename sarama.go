/*
Package kpro is a Kafka wire-protocol client core: broker dialing, TLS/SASL
handshake, request/response multiplexing over a single connection, API
version negotiation, and cluster discovery on top of a bootstrap broker
list. It does not implement a producer or consumer; it is the connection
layer those would be built on.
*/
package kpro
